// Enums live in their own package so that both configuration and command
// wiring can use them without pulling the whole config package into feature
// packages.
package common

// Specification of requested navigation output type.
// ENUM(text, json, yaml, ncx, nav)
type ExportFmt int

// Renderable reports whether format describes a renderer-facing document
// rather than a terminal listing.
func (e ExportFmt) Renderable() bool {
	return e == ExportFmtNcx || e == ExportFmtNav
}

func (e ExportFmt) Ext() string {
	switch e {
	case ExportFmtText:
		return ".txt"
	case ExportFmtJson:
		return ".json"
	case ExportFmtYaml:
		return ".yaml"
	case ExportFmtNcx:
		return ".ncx"
	case ExportFmtNav:
		return ".xhtml"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Specification of chapter title resolution policy.
// ENUM(default, content)
type TitleMode int

// FromContent reports whether missing titles should be read from the first
// heading of the content document before falling back to derivation.
func (t TitleMode) FromContent() bool {
	return t == TitleModeContent
}
