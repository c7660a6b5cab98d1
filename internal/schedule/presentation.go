package schedule

import (
	"fmt"
	"time"
)

// ReviewRepeats is how many times a review pass cycles through the
// unlocked lines.
const ReviewRepeats = 3

// Mode says whether the display holds on today's line or animates a review
// pass over everything learned so far.
type Mode int

const (
	// Static holds on the newest unlocked line.
	Static Mode = iota + 1
	// Review cycles through all unlocked lines in order.
	Review
)

var modeNames = [...]string{
	Static: "static",
	Review: "review",
}

var _ fmt.Stringer = Mode(0)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m < Static || m > Review {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Step is one frame of a review pass.
type Step struct {
	// Line is the zero-based index of the line to show.
	Line int

	// Marker is set on the single step that carries the start-of-pass dot:
	// the first step of the whole pass, and only when line numbers are
	// hidden. Visible numbers already show where the pass is.
	Marker bool
}

// Presentation is the scheduler's verdict for one instant.
type Presentation struct {
	Mode Mode

	// Line is the line index to hold on in Static mode.
	Line int

	// Steps is the ordered review pass in Review mode: the unlocked lines
	// in order, repeated Repeats times.
	Steps []Step

	// Repeats is the number of repetitions encoded in Steps.
	Repeats int
}

// Options carries the settings snapshot the scheduler consults.
type Options struct {
	// ForceReview pins the display in review mode regardless of the clock.
	ForceReview bool

	// ShowLineNumbers reports whether line numbers are rendered, which
	// decides whether review steps need the start marker.
	ShowLineNumbers bool
}

// Decide picks the presentation for the given instant. Review mode is
// active iff the instant falls in the review window or opts.ForceReview is
// set; otherwise the display stays on today's line. There is no session
// carried between calls, so re-evaluating at any cadence gives a consistent
// answer.
func Decide(now time.Time, prog Progression, opts Options) Presentation {
	if opts.ForceReview || InReviewWindow(now) {
		return Presentation{
			Mode:    Review,
			Steps:   ReviewSteps(prog.LinesLearned, opts.ShowLineNumbers),
			Repeats: ReviewRepeats,
		}
	}
	return Presentation{Mode: Static, Line: prog.TodayLine()}
}

// InReviewWindow reports whether the instant falls in the recurring review
// window, the first minute of every hour.
func InReviewWindow(now time.Time) bool {
	return now.Minute() == 0
}

// ReviewSteps builds the ordered pass over lines [0, linesLearned),
// repeated ReviewRepeats times.
func ReviewSteps(linesLearned int, showLineNumbers bool) []Step {
	if linesLearned < 1 {
		linesLearned = 1
	}
	steps := make([]Step, 0, linesLearned*ReviewRepeats)
	for rep := 0; rep < ReviewRepeats; rep++ {
		for line := 0; line < linesLearned; line++ {
			steps = append(steps, Step{
				Line:   line,
				Marker: !showLineNumbers && rep == 0 && line == 0,
			})
		}
	}
	return steps
}
