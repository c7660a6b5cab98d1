// Package catalog provides the built-in sonnet cycle the display walks
// through, one line per day, one sonnet per fortnight.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed sonnets.toml
var sonnetsTOML []byte

// ErrEmptyCatalog is the one hard error in the system: a catalog with no
// sonnets cannot seed the cycle, so construction refuses it. Every other
// bad input falls back to a sensible default instead.
var ErrEmptyCatalog = errors.New("sonnet catalog is empty")

// LinesPerSonnet is the line count every built-in entry must have.
const LinesPerSonnet = 14

// DefaultID is the sonnet used when no selection has been made.
const DefaultID = "18"

// Sonnet is one catalog entry.
type Sonnet struct {
	ID    string   `toml:"id"`
	Lines []string `toml:"lines"`
}

// Title returns the display title, e.g. "Sonnet 18".
func (s Sonnet) Title() string {
	return "Sonnet " + s.ID
}

// FirstLine returns the opening line, the traditional shorthand for a sonnet.
func (s Sonnet) FirstLine() string {
	if len(s.Lines) == 0 {
		return ""
	}
	return s.Lines[0]
}

// Catalog is an ordered, immutable set of sonnets. The order defines the
// fortnightly auto-advance cycle.
type Catalog struct {
	sonnets []Sonnet
	byID    map[string]int
}

// Load decodes and validates the embedded catalog. Beyond the shape checks
// in New, every embedded sonnet must have exactly LinesPerSonnet lines.
func Load() (*Catalog, error) {
	var doc struct {
		Sonnets []Sonnet `toml:"sonnet"`
	}
	if err := toml.Unmarshal(sonnetsTOML, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode sonnet catalog: %w", err)
	}
	cat, err := New(doc.Sonnets)
	if err != nil {
		return nil, err
	}
	for _, s := range doc.Sonnets {
		if len(s.Lines) != LinesPerSonnet {
			return nil, fmt.Errorf("sonnet %s has %d lines, want %d", s.ID, len(s.Lines), LinesPerSonnet)
		}
	}
	if _, ok := cat.ByID(DefaultID); !ok {
		return nil, fmt.Errorf("default sonnet %s missing from catalog", DefaultID)
	}
	return cat, nil
}

// New builds a catalog from the given sonnets. Every entry needs a unique
// id and at least one line.
func New(sonnets []Sonnet) (*Catalog, error) {
	if len(sonnets) == 0 {
		return nil, ErrEmptyCatalog
	}
	byID := make(map[string]int, len(sonnets))
	for i, s := range sonnets {
		if s.ID == "" {
			return nil, fmt.Errorf("sonnet at position %d has no id", i)
		}
		if _, ok := byID[s.ID]; ok {
			return nil, fmt.Errorf("duplicate sonnet id %q", s.ID)
		}
		if len(s.Lines) == 0 {
			return nil, fmt.Errorf("sonnet %s has no lines", s.ID)
		}
		byID[s.ID] = i
	}
	return &Catalog{sonnets: sonnets, byID: byID}, nil
}

// Len returns the number of sonnets in the cycle.
func (c *Catalog) Len() int {
	return len(c.sonnets)
}

// At returns the sonnet at cycle position i.
func (c *Catalog) At(i int) Sonnet {
	return c.sonnets[i]
}

// ByID looks up a sonnet by id.
func (c *Catalog) ByID(id string) (Sonnet, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Sonnet{}, false
	}
	return c.sonnets[i], true
}

// IndexOf returns the cycle position of id, or -1 when the id is unknown.
func (c *Catalog) IndexOf(id string) int {
	i, ok := c.byID[id]
	if !ok {
		return -1
	}
	return i
}

// IDs returns the sonnet ids in cycle order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.sonnets))
	for _, s := range c.sonnets {
		ids = append(ids, s.ID)
	}
	return ids
}
