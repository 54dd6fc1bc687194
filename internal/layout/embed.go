package layout

import (
	"embed"
	"strings"

	"github.com/jmylchreest/padprofile/internal/model"
)

// DefaultLayoutID is the layout used when none is configured.
const DefaultLayoutID = "hitbox"

//go:embed layouts/*.yaml
var EmbeddedLayouts embed.FS

// GetEmbeddedLayout returns a built-in layout by id.
func GetEmbeddedLayout(id string) (*model.Layout, bool) {
	data, err := EmbeddedLayouts.ReadFile("layouts/" + id + ".yaml")
	if err != nil {
		return nil, false
	}

	l, err := Parse(data)
	if err != nil {
		return nil, false
	}
	return l, true
}

// ListEmbeddedLayouts returns the ids of all built-in layouts.
func ListEmbeddedLayouts() []string {
	entries, err := EmbeddedLayouts.ReadDir("layouts")
	if err != nil {
		return nil
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			ids = append(ids, strings.TrimSuffix(entry.Name(), ".yaml"))
		}
	}
	return ids
}
