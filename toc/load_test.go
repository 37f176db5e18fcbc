package toc

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleBookTOC = `format: jb-book
root: README
parts:
  - caption: Greenhouse gases
    chapters:
      - file: tutorials/01_greenhouse_gases/01_greenhouse_gases
  - caption: Temperature
    chapters:
      - file: tutorials/02_temperature/02_temperature
        title: Global temperature records
        sections:
          - file: tutorials/02_temperature/anomalies
      - url: https://climate.copernicus.eu
        title: Copernicus climate service
`

func TestLoad(t *testing.T) {
	doc, err := Load(strings.NewReader(sampleBookTOC))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if doc.Format != FormatBook {
		t.Errorf("Format = %q, want %q", doc.Format, FormatBook)
	}
	if doc.Root != "README" {
		t.Errorf("Root = %q, want README", doc.Root)
	}
	if len(doc.Parts) != 2 {
		t.Fatalf("len(Parts) = %d, want 2", len(doc.Parts))
	}
	if doc.Parts[1].Caption != "Temperature" {
		t.Errorf("Parts[1].Caption = %q, want Temperature", doc.Parts[1].Caption)
	}
	if got := doc.Parts[1].Chapters[0].Sections[0].File; got != "tutorials/02_temperature/anomalies" {
		t.Errorf("nested section file = %q", got)
	}
	if doc.ChapterCount() != 4 {
		t.Errorf("ChapterCount() = %d, want 4", doc.ChapterCount())
	}
}

func TestLoadIdempotent(t *testing.T) {
	first, err := Load(strings.NewReader(sampleBookTOC))
	if err != nil {
		t.Fatalf("first Load() error = %v", err)
	}
	second, err := Load(strings.NewReader(sampleBookTOC))
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same source twice produced different trees")
	}
}

func TestLoadArticle(t *testing.T) {
	doc, err := Load(strings.NewReader(`format: jb-article
root: intro
sections:
  - file: part1
  - file: part2
    title: Second part
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2", len(doc.Sections))
	}
	if doc.ChapterCount() != 2 {
		t.Errorf("ChapterCount() = %d, want 2", doc.ChapterCount())
	}
}

func TestLoadSchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{
			name:  "missing format",
			input: "root: intro\nparts:\n  - caption: P1\n    chapters:\n      - file: a\n",
			field: "format",
		},
		{
			name:  "unknown format",
			input: "format: jb-comic\nroot: intro\nparts:\n  - caption: P1\n    chapters:\n      - file: a\n",
			field: "format",
		},
		{
			name:  "missing root",
			input: "format: jb-book\nparts:\n  - caption: P1\n    chapters:\n      - file: a\n",
			field: "root",
		},
		{
			name:  "missing parts",
			input: "format: jb-book\nroot: intro\n",
			field: "parts",
		},
		{
			name:  "empty chapters",
			input: "format: jb-book\nroot: intro\nparts:\n  - caption: P1\n    chapters: []\n",
			field: "parts[0].chapters",
		},
		{
			name:  "chapter without file",
			input: "format: jb-book\nroot: intro\nparts:\n  - caption: P1\n    chapters:\n      - title: only a title\n",
			field: "parts[0].chapters[0].file",
		},
		{
			name:  "file and url together",
			input: "format: jb-book\nroot: intro\nparts:\n  - caption: P1\n    chapters:\n      - file: a\n        url: https://example.org\n        title: X\n",
			field: "parts[0].chapters[0]",
		},
		{
			name:  "url without title",
			input: "format: jb-book\nroot: intro\nparts:\n  - caption: P1\n    chapters:\n      - url: https://example.org\n",
			field: "parts[0].chapters[0].title",
		},
		{
			name:  "article with parts",
			input: "format: jb-article\nroot: intro\nparts:\n  - caption: P1\n    chapters:\n      - file: a\n",
			field: "parts",
		},
		{
			name:  "unknown field",
			input: "format: jb-book\nroot: intro\nchapters:\n  - file: a\n",
			field: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("Load() error = %v, want *SchemaError", err)
			}
			if len(tt.field) > 0 && se.Field != tt.field {
				t.Errorf("SchemaError.Field = %q, want %q", se.Field, tt.field)
			}
		})
	}
}

func TestLoadParseError(t *testing.T) {
	_, err := Load(strings.NewReader("format: jb-book\nroot: [unclosed\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if pe.Line == 0 {
		t.Error("ParseError.Line = 0, want parser reported line")
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "_toc.yml")
	if err := os.WriteFile(path, []byte(sampleBookTOC), 0644); err != nil {
		t.Fatalf("Failed to write toc file: %v", err)
	}

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if doc.Root != "README" {
		t.Errorf("Root = %q, want README", doc.Root)
	}

	if _, err := LoadFile(filepath.Join(tmpDir, "absent.yml")); err == nil {
		t.Error("LoadFile() on absent file succeeded")
	}
}
