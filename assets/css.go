package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"nbk/css"
)

// Problem is a single stylesheet finding: a syntax issue or a url()
// reference pointing at a missing file.
type Problem struct {
	Sheet   string
	Line    int
	Message string
}

func (p Problem) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", p.Sheet, p.Line, p.Message)
	}
	return fmt.Sprintf("%s: %s", p.Sheet, p.Message)
}

// CheckStylesheets audits every *.css file under staticDir: tokenizes it,
// reports syntax issues and verifies that local url() references resolve
// relative to the stylesheet. Sheets are processed in natural order so the
// report is stable.
func CheckStylesheets(staticDir string, log *zap.Logger) ([]Problem, error) {
	var sheets []string
	err := filepath.WalkDir(staticDir, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !de.IsDir() && strings.EqualFold(filepath.Ext(p), ".css") {
			sheets = append(sheets, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to scan static directory: %w", err)
	}
	sort.Sort(natural.StringSlice(sheets))

	var problems []Problem
	for _, sheet := range sheets {
		data, err := os.ReadFile(sheet)
		if err != nil {
			return nil, fmt.Errorf("unable to read stylesheet %q: %w", sheet, err)
		}

		rel, err := filepath.Rel(staticDir, sheet)
		if err != nil {
			rel = sheet
		}
		rel = filepath.ToSlash(rel)

		res := css.Scan(data, log)
		for _, issue := range res.Issues {
			problems = append(problems, Problem{Sheet: rel, Line: issue.Line, Message: issue.Message})
		}
		for _, ref := range res.URLs {
			target := filepath.Join(filepath.Dir(sheet), filepath.FromSlash(ref.URL))
			if fi, err := os.Stat(target); err != nil || !fi.Mode().IsRegular() {
				problems = append(problems, Problem{Sheet: rel, Line: ref.Line, Message: fmt.Sprintf("reference %q does not resolve", ref.URL)})
			}
		}
	}
	return problems, nil
}
