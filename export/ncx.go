// Package export produces renderer-facing navigation documents from a
// flattened table of contents: NCX for legacy reading systems, EPUB3-style
// XHTML nav, and a machine-readable JSON form for site generators.
package export

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"nbk/toc"
)

// WriteNCX writes an NCX navigation document for the given entries. Entries
// must be in flatten order; playOrder is strictly sequential and nesting
// follows entry levels.
func WriteNCX(w io.Writer, title, id string, entries []toc.NavEntry) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	ncx := doc.CreateElement("ncx")
	ncx.CreateAttr("xmlns", "http://www.daisy.org/z3986/2005/ncx/")
	ncx.CreateAttr("version", "2005-1")

	head := ncx.CreateElement("head")

	metaUID := head.CreateElement("meta")
	metaUID.CreateAttr("name", "dtb:uid")
	metaUID.CreateAttr("content", id)

	maxDepth := 1
	for _, e := range entries {
		maxDepth = max(maxDepth, e.Level+1)
	}
	metaDepth := head.CreateElement("meta")
	metaDepth.CreateAttr("name", "dtb:depth")
	metaDepth.CreateAttr("content", fmt.Sprintf("%d", maxDepth))

	docTitle := ncx.CreateElement("docTitle")
	docTitle.CreateElement("text").SetText(title)

	navMap := ncx.CreateElement("navMap")

	// parents[level] is the navPoint nested navPoints of level+1 attach to
	parents := map[int]*etree.Element{}
	playOrder := 0
	for _, e := range entries {
		playOrder++

		parent := navMap
		if e.Level > 0 {
			if p, ok := parents[e.Level-1]; ok {
				parent = p
			}
		}

		navPoint := parent.CreateElement("navPoint")
		navPoint.CreateAttr("id", fmt.Sprintf("nav-%d", playOrder))
		navPoint.CreateAttr("playOrder", fmt.Sprintf("%d", playOrder))

		navLabel := navPoint.CreateElement("navLabel")
		navLabel.CreateElement("text").SetText(e.Title)

		content := navPoint.CreateElement("content")
		content.CreateAttr("src", entryTarget(e))

		parents[e.Level] = navPoint
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

// entryTarget is what a reading system should open for the entry: the
// external url for link entries, the referenced document otherwise.
func entryTarget(e toc.NavEntry) string {
	if len(e.URL) > 0 {
		return e.URL
	}
	return e.File
}
