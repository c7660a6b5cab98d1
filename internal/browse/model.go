// Package browse provides the Bubble Tea sonnet picker.
package browse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matt5000/slowshakespeare/internal/catalog"
	"github.com/matt5000/slowshakespeare/internal/settings"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	previewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea sonnet picker. Enter persists the
// highlighted sonnet as the selection and quits.
type Model struct {
	cat  *catalog.Catalog
	save func(settings.Settings) error

	s       settings.Settings
	ids     []string
	picker  table.Model
	preview viewport.Model

	filterMode  bool
	filterInput textinput.Model

	chosen  bool
	saveErr string

	width  int
	height int
}

// NewModel constructs a picker over the whole catalog, with the cursor on
// the current selection.
func NewModel(cat *catalog.Catalog, s settings.Settings, save func(settings.Settings) error) *Model {
	m := &Model{
		cat:     cat,
		save:    save,
		s:       s,
		preview: viewport.New(0, 0),
	}
	m.initFilterInput()
	m.initPicker()
	if idx := cat.IndexOf(s.Sonnet); idx > 0 {
		m.picker.SetCursor(idx)
	}
	m.refreshPreview()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refreshPreview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "/":
			return m.startFilter()
		case "enter":
			return m.choose()
		case "g", "home":
			m.picker.GotoTop()
			m.refreshPreview()
			return m, nil
		case "G", "end":
			m.picker.GotoBottom()
			m.refreshPreview()
			return m, nil
		default:
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			m.refreshPreview()
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Choice reports the persisted selection, if Enter was pressed.
func (m *Model) Choice() (string, bool) {
	if !m.chosen {
		return "", false
	}
	return m.s.Sonnet, true
}

// Settings returns the settings snapshot, including any persisted choice.
func (m *Model) Settings() settings.Settings {
	return m.s
}

func (m *Model) initFilterInput() {
	input := textinput.New()
	input.Prompt = "Filter: "
	input.Placeholder = "id or any phrase"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	m.filterInput = input
}

func (m *Model) initPicker() {
	m.picker = table.New(
		table.WithColumns(pickerColumns(0)),
		table.WithFocused(true),
	)
	m.picker.SetStyles(pickerStyles())
	m.applyQuery("")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = 2
	footerHeight = 1
	if m.saveErr != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	tableWidth := pickerWidth(m.width)
	m.picker.SetColumns(pickerColumns(tableWidth))
	m.picker.SetWidth(tableWidth)
	m.picker.SetHeight(maxInt(1, bodyHeight-2))
	m.preview.Width = maxInt(10, m.width-tableWidth-2)
	m.preview.Height = bodyHeight
	promptWidth := lipgloss.Width(m.filterInput.Prompt)
	m.filterInput.Width = maxInt(10, m.width-promptWidth-2)
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("The cycle")
	count := headerStyle.Render(fmt.Sprintf("%d of %d sonnets", len(m.ids), m.cat.Len()))
	if query := strings.TrimSpace(m.filterInput.Value()); query != "" {
		count = headerStyle.Render(fmt.Sprintf("%d of %d sonnets match %q", len(m.ids), m.cat.Len(), query))
	}
	return padLine(title, m.width) + "\n" + padLine(count, m.width)
}

func (m *Model) renderBody() string {
	if len(m.ids) == 0 {
		return "No sonnets match."
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.picker.View(), "  ", previewStyle.Render(m.preview.View()))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.filterInput.View()
	}
	help := headerStyle.Render("Move: up/down  Pick: enter  Filter: /  Quit: q")
	if m.saveErr != "" {
		return help + "\n" + errorStyle.Render("save failed: "+m.saveErr)
	}
	return help
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	return m, m.filterInput.Focus()
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.applyQuery("")
		m.refreshPreview()
		return m, nil
	case tea.KeyEnter:
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyQuery(m.filterInput.Value())
	m.refreshPreview()
	return m, cmd
}

// choose persists the highlighted sonnet as the selection. The plan start
// date is untouched; the progression re-anchors on the new sonnet.
func (m *Model) choose() (tea.Model, tea.Cmd) {
	id, ok := m.selectedID()
	if !ok {
		return m, nil
	}
	m.s.Sonnet = id
	if m.save != nil {
		if err := m.save(m.s); err != nil {
			m.saveErr = err.Error()
			return m, nil
		}
	}
	m.saveErr = ""
	m.chosen = true
	return m, tea.Quit
}

func (m *Model) selectedID() (string, bool) {
	if len(m.ids) == 0 {
		return "", false
	}
	idx := m.picker.Cursor()
	if idx < 0 || idx >= len(m.ids) {
		return "", false
	}
	return m.ids[idx], true
}

// applyQuery rebuilds the rows to those matching the query and resets the
// cursor.
func (m *Model) applyQuery(query string) {
	rows := make([]table.Row, 0, m.cat.Len())
	ids := make([]string, 0, m.cat.Len())
	for _, id := range m.cat.IDs() {
		s, _ := m.cat.ByID(id)
		if !matches(s, query) {
			continue
		}
		rows = append(rows, table.Row{id, s.FirstLine(), strconv.Itoa(len(s.Lines))})
		ids = append(ids, id)
	}
	m.picker.SetRows(rows)
	m.ids = ids
	m.picker.SetCursor(0)
}

func matches(s catalog.Sonnet, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(s.ID), query) {
		return true
	}
	for _, line := range s.Lines {
		if strings.Contains(strings.ToLower(line), query) {
			return true
		}
	}
	return false
}

func (m *Model) refreshPreview() {
	id, ok := m.selectedID()
	if !ok {
		m.preview.SetContent("")
		return
	}
	s, ok := m.cat.ByID(id)
	if !ok {
		m.preview.SetContent("")
		return
	}
	lines := make([]string, 0, len(s.Lines)+2)
	lines = append(lines, s.Title())
	lines = append(lines, "")
	for i, line := range s.Lines {
		if m.s.LineNumbers {
			lines = append(lines, fmt.Sprintf("%2d  %s", i+1, line))
		} else {
			lines = append(lines, line)
		}
	}
	m.preview.SetContent(strings.Join(lines, "\n"))
	m.preview.GotoTop()
}

func pickerColumns(tableWidth int) []table.Column {
	idWidth := 4
	linesWidth := 5
	openingWidth := tableWidth - idWidth - linesWidth - 3
	if openingWidth < 12 {
		openingWidth = 12
	}
	return []table.Column{
		{Title: "ID", Width: idWidth},
		{Title: "Opening line", Width: openingWidth},
		{Title: "Lines", Width: linesWidth},
	}
}

func pickerStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func pickerWidth(width int) int {
	return maxInt(30, minInt(width/2, 64))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if width > 0 && lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
