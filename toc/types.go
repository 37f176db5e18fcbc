// Package toc loads, validates and flattens book table-of-contents
// documents. A TOC document is a declarative YAML hierarchy (format, root
// landing document, parts with chapters) consumed by a downstream renderer.
// Loading never touches the content filesystem - resolution of chapter
// references is a separate, explicit step.
package toc

// Recognized schema identifiers.
const (
	FormatBook    = "jb-book"
	FormatArticle = "jb-article"
)

// Document is the root of a parsed TOC. It is constructed once per
// invocation and never mutated afterwards.
type Document struct {
	Format   string    `yaml:"format"`
	Root     string    `yaml:"root"`
	Parts    []Part    `yaml:"parts,omitempty"`
	Sections []Chapter `yaml:"sections,omitempty"`
}

// Part groups chapters under a display caption.
type Part struct {
	Caption  string    `yaml:"caption"`
	Numbered bool      `yaml:"numbered,omitempty"`
	Chapters []Chapter `yaml:"chapters"`
}

// Chapter references a single content document (File, extension optional)
// or an external location (URL). Title is optional for file entries -
// when absent a value derived from File is used. Sections nest arbitrarily.
type Chapter struct {
	File     string    `yaml:"file,omitempty"`
	URL      string    `yaml:"url,omitempty"`
	Title    string    `yaml:"title,omitempty"`
	Sections []Chapter `yaml:"sections,omitempty"`
}

// NavEntry is a single line of the linear navigation produced by Flatten.
type NavEntry struct {
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
	URL    string `yaml:"url,omitempty" json:"url,omitempty"`
	Title  string `yaml:"title" json:"title"`
	Anchor string `yaml:"anchor" json:"anchor"`
	// TitleDerived is set when Title was not given explicitly and had to be
	// derived from the file path.
	TitleDerived bool `yaml:"-" json:"-"`
	// Level is nesting depth: 0 for the root document, 1 for chapters and
	// top-level article sections, 2 and deeper for nested sections.
	Level int `yaml:"level" json:"level"`
	// Part is the index of the owning part, -1 for the root document and
	// for every entry of an article-style document.
	Part int `yaml:"part" json:"part"`
}

// ChapterCount returns the total number of file and url entries across all
// parts and nested sections, excluding the root document.
func (doc *Document) ChapterCount() int {
	var count func(chapters []Chapter) int
	count = func(chapters []Chapter) int {
		n := 0
		for _, ch := range chapters {
			n += 1 + count(ch.Sections)
		}
		return n
	}

	n := count(doc.Sections)
	for _, p := range doc.Parts {
		n += count(p.Chapters)
	}
	return n
}
