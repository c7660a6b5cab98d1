// Package theme defines the display color schemes shared by the TUI and
// the plain renderer.
package theme

import "github.com/charmbracelet/lipgloss"

// DefaultKey is the theme used when no valid selection is stored.
const DefaultKey = "salad"

// Theme is one display color scheme. Dark and Light are the foreground
// variants for dark and light backgrounds; Swatch is the accent shown in
// pickers.
type Theme struct {
	Key    string
	Label  string
	Dark   string
	Light  string
	Swatch string
}

// Adaptive returns the foreground color matched to the terminal background.
func (t Theme) Adaptive() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: t.Light, Dark: t.Dark}
}

var themes = []Theme{
	{Key: "salad", Label: "Salad Days", Dark: "#8FBF8F", Light: "#4A6B4A", Swatch: "#3E6D4E"},
	{Key: "milk", Label: "Milk of Kindness", Dark: "#B5A99A", Light: "#4A4540", Swatch: "#B5A99A"},
	{Key: "midsummer", Label: "Midsummer Night", Dark: "#7BA3D4", Light: "#2B4578", Swatch: "#2B4578"},
	{Key: "glisters", Label: "All That Glisters", Dark: "#D4B86A", Light: "#6B5A1E", Swatch: "#B8993E"},
	{Key: "damask", Label: "Damask Rose", Dark: "#D4856E", Light: "#B44430", Swatch: "#B44430"},
	{Key: "ink", Label: "Black Ink", Dark: "#D5CFC5", Light: "#2A2520", Swatch: "#2A2520"},
}

// All returns the themes in picker order.
func All() []Theme {
	return append([]Theme(nil), themes...)
}

// Valid reports whether key names a theme.
func Valid(key string) bool {
	return indexOf(key) >= 0
}

// Lookup resolves key to a theme, falling back to the default for unknown
// keys.
func Lookup(key string) Theme {
	if i := indexOf(key); i >= 0 {
		return themes[i]
	}
	return themes[indexOf(DefaultKey)]
}

// Next returns the theme after key in picker order, wrapping at the end.
// Unknown keys restart the cycle at the default.
func Next(key string) Theme {
	i := indexOf(key)
	if i < 0 {
		return Lookup(DefaultKey)
	}
	return themes[(i+1)%len(themes)]
}

func indexOf(key string) int {
	for i, t := range themes {
		if t.Key == key {
			return i
		}
	}
	return -1
}
