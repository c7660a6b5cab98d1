// Package schedule derives what the display should show at a given instant:
// which sonnet is active, how many of its lines are unlocked, and whether
// the moment calls for a review pass instead of the static line view.
//
// Everything here is a pure function of its arguments. Callers decide what
// "now" means; the terminal surfaces normalize both progression instants to
// local midnight via Midnight before differencing.
package schedule

import (
	"time"

	"github.com/matt5000/slowshakespeare/internal/catalog"
)

// CadenceDays is the number of days spent on a sonnet before the cycle
// auto-advances to the next one.
const CadenceDays = 14

const secondsPerDay = 86400

// Progression locates the learner within the catalog at one instant.
type Progression struct {
	// Sonnet is the active catalog entry.
	Sonnet catalog.Sonnet

	// Index is the cycle position of Sonnet.
	Index int

	// LinesLearned is the number of unlocked lines, always between 1 and
	// len(Sonnet.Lines).
	LinesLearned int

	// Day is the 1-based day within the active sonnet's fortnight, between
	// 1 and CadenceDays.
	Day int
}

// TodayLine returns the zero-based index of the newest unlocked line.
func (p Progression) TodayLine() int {
	return p.LinesLearned - 1
}

// Compute derives the progression for the given start and current instants.
//
// Elapsed whole days are counted by epoch-second differencing. A start in
// the future counts as zero elapsed days, and an unknown selected id falls
// back to the first catalog entry; neither is an error. Arbitrarily large
// gaps wrap around the catalog by modulo arithmetic.
func Compute(start, now time.Time, cat *catalog.Catalog, selectedID string) Progression {
	elapsed := elapsedDays(start, now)
	advanced := elapsed / CadenceDays
	dayWithin := int(elapsed % CadenceDays)

	base := cat.IndexOf(selectedID)
	if base < 0 {
		base = 0
	}
	index := int((int64(base) + advanced) % int64(cat.Len()))
	sonnet := cat.At(index)

	return Progression{
		Sonnet:       sonnet,
		Index:        index,
		LinesLearned: clamp(dayWithin+1, 1, len(sonnet.Lines)),
		Day:          dayWithin + 1,
	}
}

func elapsedDays(start, now time.Time) int64 {
	diff := now.Unix() - start.Unix()
	if diff < 0 {
		return 0
	}
	return diff / secondsPerDay
}

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
