package toc

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ordinalPrefixRe matches leading chapter ordering prefixes like "02_" or
// "1-" commonly used to keep content files sorted on disk.
var ordinalPrefixRe = regexp.MustCompile(`^\d+[-_ ]+`)

// NoLower keeps acronym-style names (README) intact, only the first letter
// of each word is raised.
var titleCaser = cases.Title(language.English, cases.NoLower)

// DeriveTitle builds a display title from a content document path: base name
// without extension, ordering prefix stripped, separators turned into spaces,
// title-cased. For example "tutorials/02_temperature/02_temperature" becomes
// "Temperature".
func DeriveTitle(file string) string {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = ordinalPrefixRe.ReplaceAllString(base, "")
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.Join(strings.Fields(base), " ")
	if len(base) == 0 {
		return ""
	}
	return titleCaser.String(base)
}

// titleValues is a struct that holds variables we make available for title
// template expansion
type titleValues struct {
	File    string
	Base    string
	Derived string
	Part    int
	Level   int
}

// ExpandTitleTemplate expands a user supplied title template for a derived
// entry. The template has access to the file path, its base name, the
// derived title and the entry position.
func ExpandTitleTemplate(field string, e NavEntry) (string, error) {
	tmpl, err := template.New("title_template").Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse title template: %w", err)
	}

	base := path.Base(e.File)
	values := &titleValues{
		File:    e.File,
		Base:    strings.TrimSuffix(base, path.Ext(base)),
		Derived: e.Title,
		Part:    e.Part,
		Level:   e.Level,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
