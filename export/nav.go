package export

import (
	"io"

	"github.com/beevik/etree"

	"nbk/toc"
)

// WriteNav writes an EPUB3-style XHTML navigation document. The nested list
// mirrors the document structure; part captions become unlinked group
// headers.
func WriteNav(w io.Writer, title, lang string, doc *toc.Document) error {
	d := etree.NewDocument()
	d.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	html := d.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")
	if len(lang) > 0 {
		html.CreateAttr("xml:lang", lang)
		html.CreateAttr("lang", lang)
	}

	head := html.CreateElement("head")
	head.CreateElement("title").SetText(title)

	body := html.CreateElement("body")
	nav := body.CreateElement("nav")
	nav.CreateAttr("epub:type", "toc")
	nav.CreateElement("h1").SetText(title)

	ol := nav.CreateElement("ol")

	rootEntry := toc.NavEntry{File: doc.Root, Title: toc.DeriveTitle(doc.Root)}
	appendLink(ol, rootEntry)

	appendChapters(ol, doc.Sections)

	for _, p := range doc.Parts {
		li := ol.CreateElement("li")
		li.CreateElement("span").SetText(p.Caption)
		appendChapters(li.CreateElement("ol"), p.Chapters)
	}

	d.Indent(2)
	_, err := d.WriteTo(w)
	return err
}

func appendChapters(ol *etree.Element, chapters []toc.Chapter) {
	for _, ch := range chapters {
		title := ch.Title
		if len(title) == 0 {
			title = toc.DeriveTitle(ch.File)
		}
		li := appendLink(ol, toc.NavEntry{File: ch.File, URL: ch.URL, Title: title})
		if len(ch.Sections) > 0 {
			appendChapters(li.CreateElement("ol"), ch.Sections)
		}
	}
}

func appendLink(ol *etree.Element, e toc.NavEntry) *etree.Element {
	li := ol.CreateElement("li")
	a := li.CreateElement("a")
	a.CreateAttr("href", entryTarget(e))
	a.SetText(e.Title)
	return li
}
