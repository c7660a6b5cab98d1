// Package tui provides the Bubble Tea daily sonnet display.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matt5000/slowshakespeare/internal/render"
	"github.com/matt5000/slowshakespeare/internal/schedule"
	"github.com/matt5000/slowshakespeare/internal/settings"
	"github.com/matt5000/slowshakespeare/internal/theme"

	"github.com/matt5000/slowshakespeare/internal/catalog"
)

const (
	tickInterval    = time.Second
	reviewStepDelay = 5 * time.Second

	defaultProgressWidth = 2 * schedule.CadenceDays
)

// tickMsg carries the wall clock into Update once per tick.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

// styles holds the theme-derived styles, rebuilt whenever the theme
// changes.
type styles struct {
	title lipgloss.Style
	line  lipgloss.Style
	today lipgloss.Style
}

func newStyles(th theme.Theme) styles {
	accent := th.Adaptive()
	return styles{
		title: lipgloss.NewStyle().Foreground(accent).Bold(true),
		line:  lipgloss.NewStyle().Foreground(accent).Faint(true),
		today: lipgloss.NewStyle().Foreground(accent).Bold(true),
	}
}

// Model implements the Bubble Tea daily display.
type Model struct {
	cat  *catalog.Catalog
	save func(settings.Settings) error

	s      settings.Settings
	prog   schedule.Progression
	pres   schedule.Presentation
	step   int
	stepAt time.Time
	// now is the latest observed instant; key handlers restart from it.
	now time.Time

	revealed bool
	showAll  bool
	saveErr  string

	width  int
	height int

	keys     keyMap
	help     help.Model
	progress progress.Model
	styles   styles
}

// NewModel constructs the daily display model. The save callback persists a
// settings snapshot after each user change; nil disables persistence.
func NewModel(cat *catalog.Catalog, s settings.Settings, save func(settings.Settings) error) *Model {
	return newModelAt(time.Now(), cat, s, save)
}

func newModelAt(now time.Time, cat *catalog.Catalog, s settings.Settings, save func(settings.Settings) error) *Model {
	m := &Model{
		cat:  cat,
		save: save,
		s:    s,
		keys: newKeyMap(),
		help: help.New(),
	}
	m.applyTheme()
	m.restart(now)
	m.syncKeys()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = progressWidth(msg.Width)
		return m, nil
	case tickMsg:
		m.onTick(time.Time(msg))
		m.syncKeys()
		return m, tick()
	case tea.KeyMsg:
		cmd := m.onKey(msg)
		m.syncKeys()
		return m, cmd
	default:
		return m, nil
	}
}

func (m *Model) onKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Theme):
		m.s.Theme = theme.Next(m.s.Theme).Key
		m.applyTheme()
		m.persist()
	case key.Matches(msg, m.keys.LineNumbers):
		m.s.LineNumbers = !m.s.LineNumbers
		m.persist()
		m.restart(m.now)
	case key.Matches(msg, m.keys.SelfTest):
		m.s.SelfTest = !m.s.SelfTest
		m.revealed = false
		m.persist()
	case key.Matches(msg, m.keys.Review):
		m.s.ForceReview = !m.s.ForceReview
		m.restart(m.now)
	case key.Matches(msg, m.keys.AllLines):
		m.showAll = !m.showAll
	case key.Matches(msg, m.keys.Reveal):
		if m.pres.Mode == schedule.Static && m.s.SelfTest {
			m.revealed = !m.revealed
		}
	}
	return nil
}

// onTick re-evaluates the display for the new instant. A review pass that
// is already playing advances on its own cadence and runs to completion;
// the next verdict is taken fresh once it ends.
func (m *Model) onTick(now time.Time) {
	m.now = now
	if m.pres.Mode == schedule.Review {
		if now.Sub(m.stepAt) < reviewStepDelay {
			return
		}
		m.step++
		m.stepAt = now
		if m.step >= len(m.pres.Steps) {
			m.restart(now)
		}
		return
	}

	prevLine := m.pres.Line
	prevSonnet := m.prog.Sonnet.ID
	m.prog = schedule.Compute(m.s.Start, schedule.Midnight(now), m.cat, m.s.Sonnet)
	pres := schedule.Decide(now, m.prog, m.s.Options())
	if pres.Mode == schedule.Review {
		m.pres = pres
		m.step = 0
		m.stepAt = now
		m.revealed = false
		return
	}
	m.pres = pres
	if pres.Line != prevLine || m.prog.Sonnet.ID != prevSonnet {
		m.revealed = false
	}
}

// restart recomputes everything for the given instant, discarding any
// in-flight review pass.
func (m *Model) restart(now time.Time) {
	m.now = now
	m.prog = schedule.Compute(m.s.Start, schedule.Midnight(now), m.cat, m.s.Sonnet)
	m.pres = schedule.Decide(now, m.prog, m.s.Options())
	m.step = 0
	m.stepAt = now
	m.revealed = false
}

func (m *Model) persist() {
	if m.save == nil {
		return
	}
	if err := m.save(m.s); err != nil {
		m.saveErr = err.Error()
		return
	}
	m.saveErr = ""
}

func (m *Model) applyTheme() {
	th := theme.Lookup(m.s.Theme)
	m.styles = newStyles(th)
	width := m.progress.Width
	if width <= 0 {
		width = defaultProgressWidth
	}
	p := progress.New(progress.WithSolidFill(th.Swatch), progress.WithoutPercentage())
	p.Width = width
	m.progress = p
}

func (m *Model) syncKeys() {
	m.keys.Reveal.SetEnabled(m.s.SelfTest && m.pres.Mode == schedule.Static)
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.pres.Mode == schedule.Review {
		content = m.reviewView()
	} else {
		content = m.staticView()
	}
	footer := m.footerView()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) staticView() string {
	prog := m.prog
	lines := make([]string, 0, prog.LinesLearned+4)
	lines = append(lines, m.styles.title.Render(prog.Sonnet.Title()))
	lines = append(lines, metaStyle.Render(fmt.Sprintf("Day %d of %d", prog.Day, schedule.CadenceDays)))
	lines = append(lines, m.progress.ViewAs(float64(prog.Day)/float64(schedule.CadenceDays)))
	lines = append(lines, "")
	if m.showAll {
		for i := 0; i < prog.LinesLearned; i++ {
			lines = append(lines, m.lineView(i, i == prog.TodayLine()))
		}
	} else {
		lines = append(lines, m.lineView(prog.TodayLine(), true))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) reviewView() string {
	prog := m.prog
	step := m.currentStep()
	pass := 0
	if prog.LinesLearned > 0 {
		pass = m.step / prog.LinesLearned
	}
	if pass >= m.pres.Repeats {
		pass = m.pres.Repeats - 1
	}
	lines := []string{
		m.styles.title.Render(prog.Sonnet.Title()),
		metaStyle.Render(fmt.Sprintf("Review · line %d of %d · pass %d of %d",
			step.Line+1, prog.LinesLearned, pass+1, m.pres.Repeats)),
		"",
		m.stepView(step),
	}
	return strings.Join(lines, "\n")
}

// currentStep clamps the play position into the pass. The position can
// briefly point past the pass a re-evaluation replaced mid-flight.
func (m *Model) currentStep() schedule.Step {
	if len(m.pres.Steps) == 0 {
		return schedule.Step{}
	}
	i := m.step
	if i >= len(m.pres.Steps) {
		i = len(m.pres.Steps) - 1
	}
	return m.pres.Steps[i]
}

func (m *Model) lineView(i int, today bool) string {
	prog := m.prog
	if i < 0 || i >= len(prog.Sonnet.Lines) {
		return ""
	}
	text := prog.Sonnet.Lines[i]
	if today && m.s.SelfTest && !m.revealed {
		text = render.MaskLine(text)
	}
	if m.s.LineNumbers {
		text = fmt.Sprintf("%2d  %s", i+1, text)
	}
	style := m.styles.line
	if today {
		style = m.styles.today
	}
	return style.Render(m.wrap(text))
}

func (m *Model) stepView(step schedule.Step) string {
	prog := m.prog
	if step.Line < 0 || step.Line >= len(prog.Sonnet.Lines) {
		return ""
	}
	text := prog.Sonnet.Lines[step.Line]
	switch {
	case m.s.LineNumbers:
		text = fmt.Sprintf("%2d  %s", step.Line+1, text)
	case step.Marker:
		text = "• " + text
	default:
		text = "  " + text
	}
	return m.styles.today.Render(m.wrap(text))
}

// wrap fits a line into the body, leaving a small margin on either side.
func (m *Model) wrap(line string) string {
	if m.width <= 4 {
		return line
	}
	return wrapLine(line, m.width-4)
}

func (m *Model) footerView() string {
	footer := m.help.View(m.keys)
	if m.saveErr != "" {
		footer = metaStyle.Render("save failed: "+m.saveErr) + "  " + footer
	}
	return footer
}

func progressWidth(width int) int {
	if width <= 0 || width-8 >= defaultProgressWidth {
		return defaultProgressWidth
	}
	if width-8 < 4 {
		return 4
	}
	return width - 8
}

// Settings returns the current settings snapshot, including runtime-only
// toggles.
func (m *Model) Settings() settings.Settings {
	return m.s
}
