package toc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Load parses a TOC document from r and verifies its schema. It returns
// *ParseError for malformed YAML and *SchemaError when required fields are
// missing or the declared format is not recognized. Load never accesses the
// content filesystem - use Validate for that.
func Load(r io.Reader) (*Document, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		var te *yaml.TypeError
		if errors.As(err, &te) {
			// unknown or ill-typed fields surface as type errors on strict decode
			return nil, &SchemaError{Reason: strings.Join(te.Errors, "; ")}
		}
		return nil, &ParseError{Line: yamlErrorLine(err), Err: err}
	}
	if err := checkSchema(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads and parses the TOC document at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open toc file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func checkSchema(doc *Document) error {
	switch doc.Format {
	case FormatBook, FormatArticle:
	case "":
		return &SchemaError{Field: "format", Reason: "required field is missing"}
	default:
		return &SchemaError{Field: "format", Reason: fmt.Sprintf("unrecognized schema identifier %q (supported: %s, %s)", doc.Format, FormatBook, FormatArticle)}
	}

	if len(doc.Root) == 0 {
		return &SchemaError{Field: "root", Reason: "required field is missing"}
	}

	if doc.Format == FormatArticle {
		if len(doc.Parts) > 0 {
			return &SchemaError{Field: "parts", Reason: FormatArticle + " documents use sections, not parts"}
		}
		return checkChapters(doc.Sections, "sections")
	}

	if len(doc.Sections) > 0 {
		return &SchemaError{Field: "sections", Reason: FormatBook + " documents use parts, not top-level sections"}
	}
	if len(doc.Parts) == 0 {
		return &SchemaError{Field: "parts", Reason: "required field is missing or empty"}
	}
	for i, p := range doc.Parts {
		where := fmt.Sprintf("parts[%d]", i)
		if len(p.Chapters) == 0 {
			return &SchemaError{Field: where + ".chapters", Reason: "part must have at least one chapter"}
		}
		if err := checkChapters(p.Chapters, where+".chapters"); err != nil {
			return err
		}
	}
	return nil
}

func checkChapters(chapters []Chapter, where string) error {
	for i, ch := range chapters {
		field := fmt.Sprintf("%s[%d]", where, i)
		switch {
		case len(ch.File) > 0 && len(ch.URL) > 0:
			return &SchemaError{Field: field, Reason: "file and url are mutually exclusive"}
		case len(ch.File) == 0 && len(ch.URL) == 0:
			return &SchemaError{Field: field + ".file", Reason: "required field is missing"}
		case len(ch.URL) > 0 && len(ch.Title) == 0:
			return &SchemaError{Field: field + ".title", Reason: "url entry requires explicit title"}
		case len(ch.URL) > 0 && len(ch.Sections) > 0:
			return &SchemaError{Field: field + ".sections", Reason: "url entry cannot have sections"}
		}
		if err := checkChapters(ch.Sections, field+".sections"); err != nil {
			return err
		}
	}
	return nil
}
