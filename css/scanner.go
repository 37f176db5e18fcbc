// Package css scans custom stylesheets shipped with a book: it reports
// syntax problems and collects url() references so the asset checker can
// verify they point at existing files. This is a deliberately shallow walk
// over the token stream - we are not interpreting styles, only auditing
// them.
package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// URLRef is a single url() or @import reference found in a stylesheet.
type URLRef struct {
	URL  string
	Line int
}

// Issue is a syntax problem reported by the tokenizer.
type Issue struct {
	Line    int
	Message string
}

// Sheet is the audit result for one stylesheet.
type Sheet struct {
	URLs   []URLRef
	Issues []Issue
}

// Scan tokenizes a stylesheet collecting url() references and syntax issues.
// External references (http, https, data) are skipped - only local paths are
// of interest to the asset checker.
func Scan(data []byte, log *zap.Logger) *Sheet {
	if log == nil {
		log = zap.NewNop()
	}
	sheet := &Sheet{}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	line := 1
	for {
		gt, _, tokData := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			err := parser.Err()
			if err == nil || errors.Is(err, io.EOF) {
				return sheet
			}
			var pe *parse.Error
			if errors.As(err, &pe) {
				l, _, _ := pe.Position()
				sheet.Issues = append(sheet.Issues, Issue{Line: l, Message: pe.Message})
				log.Debug("CSS syntax issue", zap.Int("line", l), zap.String("message", pe.Message))
			} else {
				sheet.Issues = append(sheet.Issues, Issue{Line: line, Message: err.Error()})
			}
			return sheet

		case css.AtRuleGrammar:
			if string(tokData) == "@import" {
				line = collectTokens(parser.Values(), line, sheet, true)
			} else {
				line = collectTokens(parser.Values(), line, sheet, false)
			}

		default:
			line = collectTokens(parser.Values(), line, sheet, false)
		}
		line += bytes.Count(tokData, []byte{'\n'})
	}
}

// collectTokens pulls url() references (and, inside @import, quoted paths)
// out of a token run, keeping the running line count current.
func collectTokens(tokens []css.Token, line int, sheet *Sheet, atImport bool) int {
	for _, t := range tokens {
		switch t.TokenType {
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			addURL(sheet, unquote(strings.TrimSpace(s)), line)
		case css.StringToken:
			if atImport {
				addURL(sheet, unquote(string(t.Data)), line)
			}
		}
		line += bytes.Count(t.Data, []byte{'\n'})
	}
	return line
}

func addURL(sheet *Sheet, url string, line int) {
	if len(url) == 0 {
		return
	}
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "http:") || strings.HasPrefix(lower, "https:") || strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "//") {
		return
	}
	// drop fragment/query used by some font url() forms
	if i := strings.IndexAny(url, "#?"); i >= 0 {
		url = url[:i]
	}
	if len(url) > 0 {
		sheet.URLs = append(sheet.URLs, URLRef{URL: url, Line: line})
	}
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
