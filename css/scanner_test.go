package css

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestScanURLs(t *testing.T) {
	sheet := Scan([]byte(`@import "extra.css";

body {
  background: url("images/backdrop.png");
}

@font-face {
  font-family: "Book";
  src: url(fonts/book.woff2) format("woff2");
}

h1 {
  background-image: url('https://example.org/remote.png');
  list-style-image: url("data:image/png;base64,AAAA");
}
`), zaptest.NewLogger(t))

	if len(sheet.Issues) != 0 {
		t.Errorf("Issues = %v, want none", sheet.Issues)
	}

	want := []string{"extra.css", "images/backdrop.png", "fonts/book.woff2"}
	if len(sheet.URLs) != len(want) {
		t.Fatalf("URLs = %v, want %v", sheet.URLs, want)
	}
	for i, w := range want {
		if sheet.URLs[i].URL != w {
			t.Errorf("URLs[%d] = %q, want %q", i, sheet.URLs[i].URL, w)
		}
	}
}

func TestScanStripsFragments(t *testing.T) {
	sheet := Scan([]byte(`@font-face { src: url("fonts/book.svg#glyphs"); }`), zaptest.NewLogger(t))
	if len(sheet.URLs) != 1 || sheet.URLs[0].URL != "fonts/book.svg" {
		t.Errorf("URLs = %v", sheet.URLs)
	}
}

func TestScanEmpty(t *testing.T) {
	sheet := Scan(nil, zaptest.NewLogger(t))
	if len(sheet.URLs) != 0 || len(sheet.Issues) != 0 {
		t.Errorf("Scan(nil) = %+v", sheet)
	}
}
