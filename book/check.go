package book

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"nbk/assets"
	"nbk/content"
	"nbk/state"
	"nbk/toc"
)

// Check validates every TOC reference against the content source and
// optionally audits orphaned documents and static assets.
func Check(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	dir, err := bookDir(cmd, log)
	if err != nil {
		return err
	}

	env.Strict = cmd.Bool("strict")

	log.Info("Check starting", zap.String("book", dir), zap.Bool("strict", env.Strict))
	defer func(start time.Time) {
		log.Info("Check completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	b, err := Open(ctx, dir, env, log)
	if err != nil {
		return err
	}
	defer b.Close()

	res := toc.Validate(b.Doc, b.Source)
	for _, broken := range res.Unresolved {
		log.Error("Unresolved reference", zap.Stringer("at", broken.Ref), zap.String("path", broken.Path))
	}
	log.Info("References checked", zap.Int("total", res.Checked), zap.Int("unresolved", len(res.Unresolved)))

	if cmd.Bool("orphans") {
		if err := reportOrphans(b, log); err != nil {
			return err
		}
	}

	if cmd.Bool("assets") {
		if err := checkAssets(b, env, log); err != nil {
			return err
		}
	}

	env.Rpt.StoreData("check/result.txt", renderResult(res))

	if env.Strict {
		return res.Err()
	}
	return nil
}

// bookDir returns the book directory argument, current directory when
// absent.
func bookDir(cmd *cli.Command, log *zap.Logger) (string, error) {
	dir := cmd.Args().Get(0)
	if len(dir) == 0 {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	return dir, nil
}

func reportOrphans(b *Book, log *zap.Logger) error {
	docs, err := b.Source.Scan()
	if err != nil {
		return fmt.Errorf("unable to enumerate content documents: %w", err)
	}

	orphans := content.Orphans(docs, b.Doc, b.Source)
	for _, o := range orphans {
		log.Warn("Orphaned content document", zap.String("path", o))
	}
	log.Info("Content documents scanned", zap.Int("total", len(docs)), zap.Int("orphaned", len(orphans)))
	return nil
}

func checkAssets(b *Book, env *state.LocalEnv, log *zap.Logger) error {
	cfg := &env.Cfg.Book

	logoData := env.DefaultLogo
	if len(cfg.Logo.Path) > 0 {
		logoPath := cfg.Logo.Path
		if !filepath.IsAbs(logoPath) {
			logoPath = filepath.Join(b.Dir, logoPath)
		}
		info, err := assets.CheckLogo(logoPath, cfg.Logo.MinWidth, cfg.Logo.MinHeight, log)
		if err != nil {
			return fmt.Errorf("book logo check failed: %w", err)
		}
		log.Info("Book logo",
			zap.String("path", info.Path), zap.String("media", info.Media),
			zap.Int("width", info.Width), zap.Int("height", info.Height))
		if logoData, err = os.ReadFile(logoPath); err != nil {
			return err
		}
	} else {
		info, err := assets.DescribeLogo(env.DefaultLogo, log)
		if err != nil {
			return fmt.Errorf("built-in logo is unusable: %w", err)
		}
		log.Info("No book logo configured, built-in will be used", zap.String("media", info.Media))
	}

	if env.Rpt != nil {
		// a rendered preview makes logo problems inspectable without the original
		if thumb, err := assets.Thumbnail(logoData, cfg.Logo.ThumbnailSize, log); err == nil {
			env.Rpt.StoreData("check/logo.png", thumb)
		} else {
			log.Warn("Unable to render logo thumbnail", zap.Error(err))
		}
	}

	if len(cfg.StaticDir) > 0 {
		staticDir := cfg.StaticDir
		if !filepath.IsAbs(staticDir) {
			staticDir = filepath.Join(b.Dir, staticDir)
		}
		problems, err := assets.CheckStylesheets(staticDir, log)
		if err != nil {
			return fmt.Errorf("stylesheet check failed: %w", err)
		}
		for _, p := range problems {
			log.Warn("Stylesheet problem", zap.String("problem", p.String()))
		}
		if len(problems) > 0 {
			return errors.New("static assets have problems")
		}
	}
	return nil
}

// renderResult produces the plain text summary stored in debug reports.
func renderResult(res toc.Result) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "checked: %d\nunresolved: %d\n", res.Checked, len(res.Unresolved))
	for _, broken := range res.Unresolved {
		fmt.Fprintf(&sb, "  %s: %q\n", broken.Ref, broken.Path)
	}
	return []byte(sb.String())
}
