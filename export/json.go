package export

import (
	"encoding/json"
	"io"

	"nbk/toc"
)

// Navigation is the machine-readable form of a flattened TOC consumed by
// downstream site generators.
type Navigation struct {
	Title    string         `json:"title"`
	ID       string         `json:"id"`
	Language string         `json:"language,omitempty"`
	Format   string         `json:"format"`
	Entries  []toc.NavEntry `json:"entries"`
}

// WriteJSON writes the navigation as indented JSON.
func WriteJSON(w io.Writer, nav Navigation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(nav)
}
