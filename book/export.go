package book

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"nbk/common"
	"nbk/export"
	"nbk/state"
	"nbk/toc"
)

// Export writes a renderer-facing navigation document (EPUB2 NCX, EPUB3 nav
// or JSON) for the book.
func Export(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("export")

	format, err := common.ParseExportFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown export format requested, switching to ncx", zap.Error(err))
		format = common.ExportFmtNcx
	}
	if !format.Renderable() && format != common.ExportFmtJson {
		return fmt.Errorf("format is not exportable: %s", format)
	}

	dir := cmd.Args().Get(0)
	if len(dir) == 0 {
		if dir, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Export starting", zap.String("book", dir), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Export completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	b, err := Open(ctx, dir, env, log)
	if err != nil {
		return err
	}
	defer b.Close()

	if cmd.Bool("validate") {
		if err := toc.Validate(b.Doc, b.Source).Err(); err != nil {
			return err
		}
	}

	entries, err := b.Entries(ctx, false)
	if err != nil {
		return err
	}

	outputName := export.OutputPath(dst, b.Title, format)

	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	out, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer out.Close()

	nav := make([]toc.NavEntry, 0, len(entries))
	for _, e := range entries {
		nav = append(nav, e.NavEntry)
	}

	switch format {
	case common.ExportFmtNcx:
		err = export.WriteNCX(out, b.Title, b.ID, nav)
	case common.ExportFmtNav:
		err = export.WriteNav(out, b.Title, b.Language, b.Doc)
	case common.ExportFmtJson:
		err = export.WriteJSON(out, navigation(b, entries))
	}
	if err != nil {
		return fmt.Errorf("unable to generate output: %w", err)
	}

	if env.Rpt != nil {
		env.Rpt.Store("result"+filepath.Ext(outputName), outputName)
	}

	log.Info("Navigation written", zap.String("file", outputName))
	return nil
}
