package book

import (
	"context"
	"fmt"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"nbk/common"
	"nbk/export"
	"nbk/state"
	"nbk/utils/debug"
)

// Nav prints the flattened navigation in the requested listing format.
func Nav(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("nav")

	format, err := common.ParseExportFmt(cmd.String("to"))
	if err != nil || format.Renderable() {
		log.Warn("Unsupported listing format requested, switching to text", zap.String("to", cmd.String("to")))
		format = common.ExportFmtText
	}

	dir, err := bookDir(cmd, log)
	if err != nil {
		return err
	}

	log.Info("Listing starting", zap.String("book", dir), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Listing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	b, err := Open(ctx, dir, env, log)
	if err != nil {
		return err
	}
	defer b.Close()

	entries, err := b.Entries(ctx, cmd.Bool("blurbs"))
	if err != nil {
		return err
	}

	out := os.Stdout
	switch format {
	case common.ExportFmtText:
		_, err = out.WriteString(renderText(b, entries, cmd.Bool("blurbs")))
	case common.ExportFmtJson:
		err = export.WriteJSON(out, navigation(b, entries))
	case common.ExportFmtYaml:
		var data []byte
		if data, err = yaml.Marshal(navigation(b, entries)); err == nil {
			_, err = out.Write(data)
		}
	}
	if err != nil {
		return fmt.Errorf("unable to write navigation listing: %w", err)
	}
	return nil
}

// navigation packs finalized entries into the serializable structure shared
// by json and yaml listings and by file export.
func navigation(b *Book, entries []Entry) export.Navigation {
	nav := export.Navigation{
		Title:    b.Title,
		ID:       b.ID,
		Language: b.Language,
		Format:   b.Doc.Format,
	}
	for _, e := range entries {
		nav.Entries = append(nav.Entries, e.NavEntry)
	}
	return nav
}

func renderText(b *Book, entries []Entry, withBlurbs bool) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "%s [%s]", b.Title, b.ID)

	for _, e := range entries {
		target := e.File
		if len(e.URL) > 0 {
			target = e.URL
		}
		tw.Line(e.Level+1, "%s (%s)", e.Title, target)
		if withBlurbs && len(e.Blurb) > 0 {
			tw.TextBlock(e.Level+2, "blurb", e.Blurb)
		}
	}
	return tw.String()
}
