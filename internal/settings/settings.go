// Package settings owns the persisted display settings: which sonnet is
// selected, when the plan began, and how lines are rendered. Settings are
// handed to the scheduler as one snapshot per evaluation; the scheduler
// never writes them back.
package settings

import (
	"regexp"
	"time"

	"github.com/matt5000/slowshakespeare/internal/catalog"
	"github.com/matt5000/slowshakespeare/internal/schedule"
	"github.com/matt5000/slowshakespeare/internal/theme"
)

// DateLayout is the calendar-day form used wherever a start date is written
// down: the settings file and share links.
const DateLayout = "2006-01-02"

var dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Settings is one snapshot of the display settings.
type Settings struct {
	// Sonnet is the selected catalog id.
	Sonnet string

	// Start is the local midnight the plan began.
	Start time.Time

	// Theme is the color scheme key.
	Theme string

	// LineNumbers renders a number next to each line.
	LineNumbers bool

	// SelfTest hides today's line until the learner reveals it.
	SelfTest bool

	// ForceReview pins the display in review mode. Runtime only, never
	// persisted.
	ForceReview bool
}

// Defaults returns the first-run settings: the default sonnet starting
// today.
func Defaults(now time.Time) Settings {
	return Settings{
		Sonnet: catalog.DefaultID,
		Start:  schedule.Midnight(now),
		Theme:  theme.DefaultKey,
	}
}

// Normalize replaces unknown or unusable fields with their defaults. It
// never fails; a mangled snapshot degrades to the default display.
func (s Settings) Normalize(cat *catalog.Catalog, now time.Time) Settings {
	if _, ok := cat.ByID(s.Sonnet); !ok {
		if _, ok := cat.ByID(catalog.DefaultID); ok {
			s.Sonnet = catalog.DefaultID
		} else {
			s.Sonnet = cat.At(0).ID
		}
	}
	if s.Start.IsZero() {
		s.Start = schedule.Midnight(now)
	}
	if !theme.Valid(s.Theme) {
		s.Theme = theme.DefaultKey
	}
	return s
}

// Options returns the scheduler options encoded in the snapshot.
func (s Settings) Options() schedule.Options {
	return schedule.Options{
		ForceReview:     s.ForceReview,
		ShowLineNumbers: s.LineNumbers,
	}
}

// ParseDate parses a YYYY-MM-DD calendar day as local midnight. The shape
// is checked before parsing so underspecified forms like 2025-6-1 are
// rejected rather than quietly accepted.
func ParseDate(v string) (time.Time, bool) {
	if !dateRE.MatchString(v) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, v, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
