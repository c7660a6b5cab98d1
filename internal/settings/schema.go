package settings

import (
	"github.com/matt5000/slowshakespeare/internal/catalog"
	"github.com/matt5000/slowshakespeare/internal/theme"
)

// Field describes one settings field for external configuration surfaces.
type Field struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Desc    string   `json:"desc"`
	Type    string   `json:"type"`
	Default string   `json:"default"`
	Options []Option `json:"options,omitempty"`
}

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Schema lists the configurable fields with their defaults and choices, in
// display order.
func Schema(cat *catalog.Catalog) []Field {
	sonnets := make([]Option, 0, cat.Len())
	for _, id := range cat.IDs() {
		s, _ := cat.ByID(id)
		sonnets = append(sonnets, Option{Value: id, Label: s.Title()})
	}
	themes := make([]Option, 0, len(theme.All()))
	for _, th := range theme.All() {
		themes = append(themes, Option{Value: th.Key, Label: th.Label})
	}
	return []Field{
		{
			ID:      "sonnet",
			Name:    "Sonnet",
			Desc:    "Sonnet to memorize",
			Type:    "select",
			Default: catalog.DefaultID,
			Options: sonnets,
		},
		{
			ID:   "start",
			Name: "Start date",
			Desc: "Day one of the fortnight",
			Type: "date",
		},
		{
			ID:      "theme",
			Name:    "Color",
			Desc:    "Text color scheme",
			Type:    "select",
			Default: theme.DefaultKey,
			Options: themes,
		},
		{
			ID:      "line-numbers",
			Name:    "Line numbers",
			Desc:    "Show a number next to each line",
			Type:    "toggle",
			Default: "false",
		},
		{
			ID:      "self-test",
			Name:    "Self-test",
			Desc:    "Hide today's line until revealed",
			Type:    "toggle",
			Default: "false",
		},
	}
}
