package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Theme       key.Binding
	LineNumbers key.Binding
	SelfTest    key.Binding
	Review      key.Binding
	AllLines    key.Binding
	Reveal      key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		LineNumbers: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "numbers")),
		SelfTest:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "self-test")),
		Review:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "review")),
		AllLines:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all lines")),
		Reveal:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "reveal")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Theme, k.LineNumbers, k.SelfTest, k.Review, k.AllLines, k.Reveal, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Theme, k.LineNumbers, k.SelfTest},
		{k.Review, k.AllLines, k.Reveal, k.Quit},
	}
}
