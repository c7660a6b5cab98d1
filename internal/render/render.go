// Package render writes plain-text views of the progression for
// non-interactive output.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/matt5000/slowshakespeare/internal/catalog"
	"github.com/matt5000/slowshakespeare/internal/schedule"
)

const terminalWidthBackup = 80

// View is everything the plain renderer needs for one evaluation.
type View struct {
	Progression  schedule.Progression
	Presentation schedule.Presentation
	LineNumbers  bool
	SelfTest     bool
	Width        int
}

// Today writes the daily view: the title, the fortnight progress, and the
// unlocked lines with today's line marked. In self-test mode today's line
// is masked.
func Today(w io.Writer, v View) error {
	width := v.Width
	if width <= 0 {
		width = TerminalWidth()
	}
	prog := v.Progression
	header := fmt.Sprintf("%s, day %d of %d", prog.Sonnet.Title(), prog.Day, schedule.CadenceDays)
	if err := writeLine(w, truncate(header, width)); err != nil {
		return err
	}
	if err := writeLine(w, ""); err != nil {
		return err
	}
	for i := 0; i < prog.LinesLearned; i++ {
		text := prog.Sonnet.Lines[i]
		today := i == prog.TodayLine()
		if today && v.SelfTest {
			text = MaskLine(text)
		}
		prefix := "  "
		if today {
			prefix = "> "
		}
		var line string
		if v.LineNumbers {
			line = fmt.Sprintf("%s%2d  %s", prefix, i+1, text)
		} else {
			line = prefix + text
		}
		if err := writeLine(w, truncate(line, width)); err != nil {
			return err
		}
	}
	return nil
}

// Review writes the full review pass: every unlocked line in order,
// repeated once per pass, with the start-of-pass dot where the scheduler
// marked it.
func Review(w io.Writer, v View) error {
	width := v.Width
	if width <= 0 {
		width = TerminalWidth()
	}
	prog := v.Progression
	pres := v.Presentation
	header := fmt.Sprintf("%s review: %d lines, %d passes",
		prog.Sonnet.Title(), prog.LinesLearned, pres.Repeats)
	if err := writeLine(w, truncate(header, width)); err != nil {
		return err
	}
	for i, step := range pres.Steps {
		if i%prog.LinesLearned == 0 {
			if err := writeLine(w, ""); err != nil {
				return err
			}
			if err := writeLine(w, fmt.Sprintf("pass %d", i/prog.LinesLearned+1)); err != nil {
				return err
			}
		}
		text := prog.Sonnet.Lines[step.Line]
		prefix := "    "
		if step.Marker {
			prefix = "  • "
		}
		var line string
		if v.LineNumbers {
			line = fmt.Sprintf("%s%2d  %s", prefix, step.Line+1, text)
		} else {
			line = prefix + text
		}
		if err := writeLine(w, truncate(line, width)); err != nil {
			return err
		}
	}
	return nil
}

// Sonnets writes the catalog listing with the active entry marked.
func Sonnets(w io.Writer, cat *catalog.Catalog, activeID string, width int) error {
	if width <= 0 {
		width = TerminalWidth()
	}
	idWidth := 0
	for _, id := range cat.IDs() {
		if n := displayWidth(id); n > idWidth {
			idWidth = n
		}
	}
	for _, id := range cat.IDs() {
		s, _ := cat.ByID(id)
		mark := " "
		if id == activeID {
			mark = "*"
		}
		line := fmt.Sprintf("%s %-*s  %s", mark, idWidth, id, s.FirstLine())
		if err := writeLine(w, truncate(line, width)); err != nil {
			return err
		}
	}
	return nil
}

// TerminalWidth returns the stdout width, or a backup when stdout is not a
// terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func writeLine(w io.Writer, line string) error {
	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func truncate(line string, width int) string {
	if width <= 0 || displayWidth(line) <= width {
		return line
	}
	var b strings.Builder
	used := 0
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if used+rw > width-1 {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	return b.String() + "…"
}

// MaskLine hides the letters of a line while keeping its shape.
func MaskLine(line string) string {
	var b strings.Builder
	for _, r := range line {
		if r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune('·')
		}
	}
	return b.String()
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
