package content

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// Meta is what we can tell about a content document without executing it.
type Meta struct {
	// Title is the text of the first ATX heading, empty when the document
	// has none.
	Title string
	// Blurb is the first sentence of the first paragraph following the
	// title heading.
	Blurb string
}

const maxBlurbLen = 200

// The english tokenizer model is large, load it once and only when blurbs
// are actually requested.
var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
)

func getTokenizer(log *zap.Logger) *sentences.DefaultSentenceTokenizer {
	tokenizerOnce.Do(func() {
		var err error
		if tokenizer, err = english.NewSentenceTokenizer(nil); err != nil {
			log.Warn("Unable to load sentence tokenizer, degrading to plain truncation", zap.Error(err))
		}
	})
	return tokenizer
}

// Extract reads title and blurb from a content document. The format is
// decided by name: notebooks are JSON with markdown cells, everything else
// is treated as markdown. Character set of markdown sources is sniffed, old
// tutorial collections are not always UTF-8.
func Extract(name string, data []byte, log *zap.Logger) (Meta, error) {
	if strings.HasSuffix(strings.ToLower(name), ".ipynb") {
		return extractNotebook(data, log)
	}
	return extractMarkdown(data, log)
}

func extractMarkdown(data []byte, log *zap.Logger) (Meta, error) {
	r, err := charset.NewReader(bytes.NewReader(data), "text/markdown")
	if err != nil {
		return Meta{}, fmt.Errorf("unable to detect character set: %w", err)
	}

	var (
		meta      Meta
		paragraph strings.Builder
		inCode    bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case len(meta.Title) == 0:
			if strings.HasPrefix(trimmed, "# ") {
				meta.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			}
		case strings.HasPrefix(trimmed, "#"):
			// next heading ends the lead paragraph search
			meta.Blurb = firstSentence(paragraph.String(), log)
			return meta, scanner.Err()
		case len(trimmed) == 0:
			if paragraph.Len() > 0 {
				meta.Blurb = firstSentence(paragraph.String(), log)
				return meta, scanner.Err()
			}
		default:
			if paragraph.Len() > 0 {
				paragraph.WriteByte(' ')
			}
			paragraph.WriteString(trimmed)
		}
	}
	if err := scanner.Err(); err != nil {
		return meta, err
	}
	if len(meta.Blurb) == 0 {
		meta.Blurb = firstSentence(paragraph.String(), log)
	}
	return meta, nil
}

// notebook is the minimal slice of the nbformat 4 JSON shape we care about.
type notebook struct {
	Cells []struct {
		CellType string          `json:"cell_type"`
		Source   json.RawMessage `json:"source"`
	} `json:"cells"`
}

func extractNotebook(data []byte, log *zap.Logger) (Meta, error) {
	var nb notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return Meta{}, fmt.Errorf("unable to parse notebook: %w", err)
	}

	for _, cell := range nb.Cells {
		if cell.CellType != "markdown" {
			continue
		}
		text, err := cellText(cell.Source)
		if err != nil {
			return Meta{}, err
		}
		meta, err := extractMarkdown([]byte(text), log)
		if err != nil || len(meta.Title) > 0 || len(meta.Blurb) > 0 {
			return meta, err
		}
	}
	return Meta{}, nil
}

// cellText joins notebook cell source which nbformat stores either as a
// single string or as a list of line strings.
func cellText(raw json.RawMessage) (string, error) {
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, ""), nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return "", fmt.Errorf("unable to parse notebook cell source: %w", err)
	}
	return single, nil
}

func firstSentence(text string, log *zap.Logger) string {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return ""
	}

	if tok := getTokenizer(log); tok != nil {
		if parts := tok.Tokenize(text); len(parts) > 0 {
			return strings.TrimSpace(parts[0].Text)
		}
	}
	return truncate(text, maxBlurbLen)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = limit
	}
	return strings.TrimSpace(string(runes[:cut])) + "…"
}
