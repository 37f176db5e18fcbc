package content

import (
	"archive/zip"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"nbk/archive"
	"nbk/toc"
)

// Scan enumerates all content documents with supported extensions under the
// resolver's source, in natural order ("2_a" before "10_a"). Paths are
// relative, slash separated.
func (d *Dir) Scan() ([]string, error) {
	var docs []string

	err := filepath.WalkDir(d.root, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			// hidden and underscore-prefixed trees hold build output, not content
			name := de.Name()
			if p != d.root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !slices.Contains(d.exts, strings.ToLower(filepath.Ext(p))) {
			return nil
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		docs = append(docs, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Sort(natural.StringSlice(docs))
	return docs, nil
}

// Scan enumerates all content documents stored in the archive, in natural
// order.
func (z *Zip) Scan() ([]string, error) {
	var docs []string

	err := archive.Walk(z.path, "", func(_ string, f *zip.File) error {
		name := path.Clean(f.Name)
		if slices.Contains(z.exts, strings.ToLower(path.Ext(name))) {
			docs = append(docs, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Sort(natural.StringSlice(docs))
	return docs, nil
}

// Orphans returns the documents from docs never referenced by the TOC,
// neither as root nor by any chapter. Input order (natural) is preserved.
func Orphans(docs []string, doc *toc.Document, resolver toc.Resolver) []string {
	referenced := make(map[string]struct{})
	for e := range doc.Flatten() {
		if len(e.File) == 0 {
			continue
		}
		if resolved, ok := resolver.Resolve(e.File); ok {
			referenced[resolved] = struct{}{}
		}
	}

	var orphans []string
	for _, d := range docs {
		if _, ok := referenced[d]; !ok {
			orphans = append(orphans, d)
		}
	}
	return orphans
}
