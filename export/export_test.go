package export

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"nbk/common"
	"nbk/toc"
)

func testDocument(t *testing.T) (*toc.Document, []toc.NavEntry) {
	t.Helper()
	doc, err := toc.Load(strings.NewReader(`format: jb-book
root: README
parts:
  - caption: Temperature
    chapters:
      - file: tutorials/02_temperature/02_temperature
        title: Temperature records
        sections:
          - file: tutorials/02_temperature/anomalies
      - url: https://climate.copernicus.eu
        title: Copernicus
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return doc, slices.Collect(doc.Flatten())
}

func TestWriteNCX(t *testing.T) {
	_, entries := testDocument(t)

	buf := new(bytes.Buffer)
	if err := WriteNCX(buf, "Climate tutorials", "urn:uuid:1234", entries); err != nil {
		t.Fatalf("WriteNCX() error = %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(buf.Bytes()); err != nil {
		t.Fatalf("output is not XML: %v", err)
	}

	if uid := doc.FindElement("//meta[@name='dtb:uid']"); uid == nil || uid.SelectAttrValue("content", "") != "urn:uuid:1234" {
		t.Error("dtb:uid missing or wrong")
	}
	if depth := doc.FindElement("//meta[@name='dtb:depth']"); depth == nil || depth.SelectAttrValue("content", "") != "3" {
		t.Error("dtb:depth missing or wrong, want 3")
	}

	points := doc.FindElements("//navPoint")
	if len(points) != len(entries) {
		t.Fatalf("navPoints = %d, want %d", len(points), len(entries))
	}

	// playOrder is strictly sequential in flatten order
	for i := range entries {
		p := doc.FindElement("//navPoint[@id='nav-" + strconv.Itoa(i+1) + "']")
		if p == nil {
			t.Fatalf("navPoint nav-%d missing", i+1)
		}
		if got := p.SelectAttrValue("playOrder", ""); got != strconv.Itoa(i+1) {
			t.Errorf("navPoint nav-%d playOrder = %s", i+1, got)
		}
	}

	// nested section attaches under its chapter
	chapter := doc.FindElement("//navPoint[@id='nav-2']")
	if chapter == nil || chapter.FindElement("./navPoint") == nil {
		t.Error("nested section is not nested under its chapter")
	}
}

func TestWriteNav(t *testing.T) {
	doc, _ := testDocument(t)

	buf := new(bytes.Buffer)
	if err := WriteNav(buf, "Climate tutorials", "en", doc); err != nil {
		t.Fatalf("WriteNav() error = %v", err)
	}

	out := etree.NewDocument()
	if err := out.ReadFromBytes(buf.Bytes()); err != nil {
		t.Fatalf("output is not XML: %v", err)
	}

	if nav := out.FindElement("//nav"); nav == nil || nav.SelectAttrValue("epub:type", "") != "toc" {
		t.Error("nav element missing or missing epub:type")
	}
	if span := out.FindElement("//li/span"); span == nil || span.Text() != "Temperature" {
		t.Error("part caption group header missing")
	}
	links := out.FindElements("//a")
	if len(links) != 4 {
		t.Fatalf("links = %d, want 4", len(links))
	}
	if links[0].SelectAttrValue("href", "") != "README" {
		t.Errorf("first link href = %q", links[0].SelectAttrValue("href", ""))
	}
	if links[3].SelectAttrValue("href", "") != "https://climate.copernicus.eu" {
		t.Errorf("url link href = %q", links[3].SelectAttrValue("href", ""))
	}
}

func TestWriteJSON(t *testing.T) {
	_, entries := testDocument(t)

	buf := new(bytes.Buffer)
	err := WriteJSON(buf, Navigation{Title: "Climate tutorials", ID: "id-1", Language: "en", Format: toc.FormatBook, Entries: entries})
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var nav Navigation
	if err := json.Unmarshal(buf.Bytes(), &nav); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if nav.Title != "Climate tutorials" || len(nav.Entries) != len(entries) {
		t.Errorf("roundtrip = %+v", nav)
	}
	if nav.Entries[0].File != "README" {
		t.Errorf("first entry = %+v", nav.Entries[0])
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		format common.ExportFmt
		want   string
	}{
		{"ncx", "Climate Tutorials", common.ExportFmtNcx, filepath.Join("out", "climate-tutorials.ncx")},
		{"nav", "Climate Tutorials", common.ExportFmtNav, filepath.Join("out", "climate-tutorials.xhtml")},
		{"json", "Climate Tutorials", common.ExportFmtJson, filepath.Join("out", "climate-tutorials.json")},
		{"empty title", "", common.ExportFmtJson, filepath.Join("out", "navigation.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath("out", tt.title, tt.format); got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
