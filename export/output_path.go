package export

import (
	"path/filepath"

	"github.com/gosimple/slug"

	"nbk/common"
	"nbk/config"
)

// OutputPath builds the destination file path for an exported navigation
// document: slugified book title (or explicit name) under dir, extension by
// format.
func OutputPath(dir, name string, format common.ExportFmt) string {
	base := slug.Make(name)
	if len(base) == 0 {
		base = "navigation"
	}
	return filepath.Join(dir, config.CleanFileName(base)+format.Ext())
}
