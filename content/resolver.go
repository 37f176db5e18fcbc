// Package content resolves and describes the content documents a TOC refers
// to: markdown sources and computational notebooks under a directory or
// packed into a zip archive.
package content

import (
	"archive/zip"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"nbk/archive"
)

// DefaultExtensions is the resolution order tried for extension-less
// references.
var DefaultExtensions = []string{".md", ".ipynb"}

// Dir resolves content references against a directory root. References are
// relative, slash separated and may omit the extension - configured
// extensions are tried in order.
type Dir struct {
	root string
	exts []string
}

func NewDir(root string, exts []string) *Dir {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	return &Dir{root: root, exts: exts}
}

// Resolve implements toc.Resolver. The returned path is relative to the
// content root, with the matched extension. References escaping the root
// never resolve.
func (d *Dir) Resolve(ref string) (string, bool) {
	ref, ok := cleanRef(ref)
	if !ok {
		return "", false
	}

	for _, name := range candidates(ref, d.exts) {
		if fi, err := os.Stat(filepath.Join(d.root, filepath.FromSlash(name))); err == nil && fi.Mode().IsRegular() {
			return name, true
		}
	}
	return "", false
}

// Root returns the content root directory.
func (d *Dir) Root() string {
	return d.root
}

// Extensions returns the configured resolution order.
func (d *Dir) Extensions() []string {
	return slices.Clone(d.exts)
}

// Open reads the resolved content document.
func (d *Dir) Open(resolved string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.root, filepath.FromSlash(resolved)))
}

// Stat returns size and modification time (unix seconds) of the resolved
// content document.
func (d *Dir) Stat(resolved string) (int64, int64, error) {
	fi, err := os.Stat(filepath.Join(d.root, filepath.FromSlash(resolved)))
	if err != nil {
		return 0, 0, err
	}
	return fi.Size(), fi.ModTime().Unix(), nil
}

// Zip resolves content references against a zip archive. Tutorial bundles
// are commonly distributed archived, so existence checks run against the
// archive index without unpacking anything.
type Zip struct {
	path    string
	exts    []string
	entries map[string]int64
}

func NewZip(archivePath string, exts []string) (*Zip, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	z := &Zip{path: archivePath, exts: exts, entries: make(map[string]int64)}

	err := archive.Walk(archivePath, "", func(_ string, f *zip.File) error {
		z.entries[path.Clean(f.Name)] = int64(f.UncompressedSize64)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return z, nil
}

// Resolve implements toc.Resolver against the archive index.
func (z *Zip) Resolve(ref string) (string, bool) {
	ref, ok := cleanRef(ref)
	if !ok {
		return "", false
	}

	for _, name := range candidates(ref, z.exts) {
		if _, exists := z.entries[name]; exists {
			return name, true
		}
	}
	return "", false
}

// Open reads the resolved content document from the archive.
func (z *Zip) Open(resolved string) ([]byte, error) {
	return archive.ReadFile(z.path, resolved)
}

// Stat returns the uncompressed size of the resolved archive entry. Archive
// members carry no usable local timestamps, so modification time is always
// zero.
func (z *Zip) Stat(resolved string) (int64, int64, error) {
	size, exists := z.entries[resolved]
	if !exists {
		return 0, 0, os.ErrNotExist
	}
	return size, 0, nil
}

// cleanRef normalizes a content reference and rejects paths that would
// escape the content root.
func cleanRef(ref string) (string, bool) {
	ref = path.Clean(strings.ReplaceAll(ref, "\\", "/"))
	if len(ref) == 0 || ref == "." || path.IsAbs(ref) {
		return "", false
	}
	if ref == ".." || strings.HasPrefix(ref, "../") {
		return "", false
	}
	return ref, true
}

// candidates lists names to try for a reference: the reference itself when
// it already carries a supported extension, otherwise the reference with
// each configured extension appended in order.
func candidates(ref string, exts []string) []string {
	if ext := path.Ext(ref); len(ext) > 0 && slices.Contains(exts, strings.ToLower(ext)) {
		return []string{ref}
	}
	names := make([]string, 0, len(exts))
	for _, ext := range exts {
		names = append(names, ref+ext)
	}
	return names
}
