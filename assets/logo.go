// Package assets audits presentation assets shipped with a book: the logo
// image and any custom stylesheets under the static directory. Problems are
// reported, not fatal - whether they abort the build is the caller's policy.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"regexp"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"nbk/utils/images"
)

// LogoInfo describes a verified logo image.
type LogoInfo struct {
	Path   string
	Media  string // detected media type, e.g. "image/png" or "image/svg+xml"
	Width  int
	Height int
}

// svgSniffRe detects an SVG root element; SVG has no magic number so
// content sniffing is the only option.
var svgSniffRe = regexp.MustCompile(`(?s)<svg[\s>]`)

// CheckLogo verifies that the logo at path exists, is a supported image and
// meets the minimum dimensions. Returns the detected media type and size.
func CheckLogo(path string, minWidth, minHeight int, log *zap.Logger) (*LogoInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read logo: %w", err)
	}
	info, err := DescribeLogo(data, log)
	if err != nil {
		return nil, fmt.Errorf("logo %q: %w", path, err)
	}
	info.Path = path

	if info.Width < minWidth || info.Height < minHeight {
		return info, fmt.Errorf("logo %q is %dx%d, below required minimum %dx%d", path, info.Width, info.Height, minWidth, minHeight)
	}
	log.Debug("Logo verified", zap.String("path", path), zap.String("media", info.Media), zap.Int("width", info.Width), zap.Int("height", info.Height))
	return info, nil
}

// DescribeLogo detects the media type and dimensions of logo data.
func DescribeLogo(data []byte, log *zap.Logger) (*LogoInfo, error) {
	if isSVG(data) {
		w, h, err := images.SVGDimensions(data)
		if err != nil {
			return nil, fmt.Errorf("unable to parse SVG: %w", err)
		}
		return &LogoInfo{Media: "image/svg+xml", Width: w, Height: h}, nil
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || kind.MIME.Type != "image" {
		return nil, fmt.Errorf("unsupported logo media type")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s logo: %w", kind.MIME.Value, err)
	}
	return &LogoInfo{Media: kind.MIME.Value, Width: cfg.Width, Height: cfg.Height}, nil
}

// Thumbnail renders a PNG preview of the logo fitted into a size x size box,
// rasterizing SVG sources as needed. Used by the debug report so a broken
// logo can be inspected without the original file.
func Thumbnail(data []byte, size int, log *zap.Logger) ([]byte, error) {
	var (
		img image.Image
		err error
	)
	if isSVG(data) {
		img, err = images.RasterizeSVGToImage(data, size, size)
	} else {
		if img, _, err = image.Decode(bytes.NewReader(data)); err == nil {
			img = imaging.Fit(img, size, size, imaging.Lanczos)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("unable to render logo thumbnail: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("unable to encode logo thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return svgSniffRe.Match(head)
}
