// Package book ties a TOC document to its content source and implements the
// check, nav and export subcommands on top of that pair.
package book

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nbk/common"
	"nbk/config"
	"nbk/content"
	"nbk/state"
	"nbk/toc"
)

// Source is what a book needs from its content backend: existence checks for
// TOC references, document reads and full enumeration. Both directory and
// archive backed sources from the content package satisfy it.
type Source interface {
	toc.Resolver
	Open(resolved string) ([]byte, error)
	Stat(resolved string) (size, mtime int64, err error)
	Scan() ([]string, error)
}

// Book is an opened book: parsed TOC plus the content source it refers to.
type Book struct {
	Dir      string
	TOCPath  string
	Doc      *toc.Document
	Source   Source
	Title    string
	ID       string
	Language string

	cfg   *config.BookConfig
	cache *content.Cache
	log   *zap.Logger
}

// Entry is a finalized navigation line: titles resolved per configured
// policy, with an optional content blurb.
type Entry struct {
	toc.NavEntry
	Blurb string
}

// Open loads and validates the TOC under dir and prepares the content source.
// TOC load failures come back as *toc.ParseError or *toc.SchemaError.
func Open(ctx context.Context, dir string, env *state.LocalEnv, log *zap.Logger) (*Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	cfg := &env.Cfg.Book

	tocPath := cfg.TOCPath
	if !filepath.IsAbs(tocPath) {
		tocPath = filepath.Join(dir, tocPath)
	}

	doc, err := toc.LoadFile(tocPath)
	if err != nil {
		return nil, err
	}
	env.Rpt.Store("book/"+filepath.Base(tocPath), tocPath)

	src, err := openSource(dir, cfg)
	if err != nil {
		return nil, err
	}

	b := &Book{
		Dir:      dir,
		TOCPath:  tocPath,
		Doc:      doc,
		Source:   src,
		Language: cfg.Language,
		cfg:      cfg,
		log:      log,
	}

	b.Title = cfg.Title
	if len(b.Title) == 0 {
		b.Title = toc.DeriveTitle(doc.Root)
	}
	b.ID = bookID(cfg.ID, dir, log)

	if len(cfg.CachePath) > 0 {
		cachePath := cfg.CachePath
		if !filepath.IsAbs(cachePath) {
			cachePath = filepath.Join(dir, cachePath)
		}
		if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
			log.Warn("Unable to create cache directory", zap.String("path", cachePath), zap.Error(err))
		}
		// cache is best effort, a book must open without one
		if b.cache, err = content.OpenCache(cachePath, log); err != nil {
			log.Warn("Unable to open metadata cache, continuing without", zap.String("path", cachePath), zap.Error(err))
		}
	}

	log.Debug("Book opened",
		zap.String("dir", dir), zap.String("toc", tocPath), zap.String("title", b.Title),
		zap.String("id", b.ID), zap.Int("chapters", doc.ChapterCount()))
	return b, nil
}

// Close releases the metadata cache if one was opened.
func (b *Book) Close() error {
	return b.cache.Close()
}

// TitleMode returns the configured chapter title resolution policy.
func (b *Book) TitleMode() common.TitleMode {
	if b.cfg.TitlesFromContent {
		return common.TitleModeContent
	}
	return common.TitleModeDefault
}

// openSource picks a content backend: a zip archive when content_dir points
// at one, plain directory otherwise.
func openSource(dir string, cfg *config.BookConfig) (Source, error) {
	root := cfg.ContentDir
	if !filepath.IsAbs(root) {
		root = filepath.Join(dir, root)
	}
	if strings.EqualFold(filepath.Ext(root), ".zip") {
		z, err := content.NewZip(root, cfg.Extensions)
		if err != nil {
			return nil, fmt.Errorf("unable to open content archive (%s): %w", root, err)
		}
		return z, nil
	}
	return content.NewDir(root, cfg.Extensions), nil
}

// bookID returns the configured identifier when it parses as a UUID,
// otherwise derives a stable one from the book location so repeated runs
// agree.
func bookID(configured, dir string, log *zap.Logger) string {
	if len(configured) > 0 {
		if id, err := uuid.Parse(configured); err == nil {
			return id.String()
		}
		log.Warn("Configured book id is not a valid UUID, deriving one", zap.String("id", configured))
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("nbk:"+filepath.ToSlash(dir))).String()
}

// Entries flattens the TOC and finalizes titles. For derived titles the
// content policy may replace them with the first heading of the document,
// and a configured title template is applied last. Blurbs are extracted only
// on request, they are needed by a single nav mode.
func (b *Book) Entries(ctx context.Context, withBlurbs bool) ([]Entry, error) {
	var entries []Entry

	for e := range b.Doc.Flatten() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := Entry{NavEntry: e}

		needMeta := withBlurbs || (e.TitleDerived && b.TitleMode().FromContent())
		if needMeta && len(e.File) > 0 {
			meta := b.meta(e.File)
			if e.TitleDerived && b.TitleMode().FromContent() && len(meta.Title) > 0 {
				entry.Title = meta.Title
			}
			entry.Blurb = meta.Blurb
		}

		if entry.TitleDerived && len(b.cfg.TitleTemplate) > 0 {
			expanded, err := toc.ExpandTitleTemplate(b.cfg.TitleTemplate, entry.NavEntry)
			if err != nil {
				return nil, fmt.Errorf("unable to expand title template: %w", err)
			}
			entry.Title = expanded
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

// meta extracts title and blurb from the referenced content document, going
// through the cache when one is open. Extraction failures only degrade
// titles, they never fail the listing.
func (b *Book) meta(ref string) content.Meta {
	resolved, ok := b.Source.Resolve(ref)
	if !ok {
		return content.Meta{}
	}

	size, mtime, err := b.Source.Stat(resolved)
	if err == nil {
		if meta, hit := b.cache.Get(resolved, size, mtime); hit {
			return meta
		}
	}

	data, err := b.Source.Open(resolved)
	if err != nil {
		b.log.Warn("Unable to read content document", zap.String("path", resolved), zap.Error(err))
		return content.Meta{}
	}

	meta, err := content.Extract(resolved, data, b.log)
	if err != nil {
		b.log.Warn("Unable to extract content metadata", zap.String("path", resolved), zap.Error(err))
		return content.Meta{}
	}
	b.cache.Put(resolved, size, mtime, meta)
	return meta
}
