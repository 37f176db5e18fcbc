package toc

import (
	"iter"

	"github.com/gosimple/slug"
)

// Flatten produces the linear navigation of the document: the root entry
// first, then every part's chapters in listed order with nested sections
// depth-first immediately after their chapter. The sequence is lazy and
// restartable - ranging over it twice yields identical entries. No sorting,
// no deduplication; order exactly mirrors the document.
func (doc *Document) Flatten() iter.Seq[NavEntry] {
	return func(yield func(NavEntry) bool) {
		if !yield(makeEntry(Chapter{File: doc.Root}, 0, -1)) {
			return
		}
		if !flattenChapters(doc.Sections, 1, -1, yield) {
			return
		}
		for pi, p := range doc.Parts {
			if !flattenChapters(p.Chapters, 1, pi, yield) {
				return
			}
		}
	}
}

func flattenChapters(chapters []Chapter, level, part int, yield func(NavEntry) bool) bool {
	for _, ch := range chapters {
		if !yield(makeEntry(ch, level, part)) {
			return false
		}
		if !flattenChapters(ch.Sections, level+1, part, yield) {
			return false
		}
	}
	return true
}

func makeEntry(ch Chapter, level, part int) NavEntry {
	e := NavEntry{
		File:  ch.File,
		URL:   ch.URL,
		Title: ch.Title,
		Level: level,
		Part:  part,
	}
	if len(e.Title) == 0 {
		e.Title = DeriveTitle(ch.File)
		e.TitleDerived = true
	}
	e.Anchor = slug.Make(e.Title)
	return e
}
