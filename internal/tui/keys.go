package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextRange key.Binding
	PrevRange key.Binding
	Activate  key.Binding
	Ignore    key.Binding
	Summary   key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	NextRange: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab", "next range"),
	),
	PrevRange: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab", "prev range"),
	),
	Activate: key.NewBinding(
		key.WithKeys("a", "enter"),
		key.WithHelp("a", "activate"),
	),
	Ignore: key.NewBinding(
		key.WithKeys("i", "esc"),
		key.WithHelp("i", "ignore"),
	),
	Summary: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "refresh summary"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextRange, k.Activate, k.Ignore, k.Summary, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextRange, k.PrevRange},
		{k.Activate, k.Ignore},
		{k.Summary, k.Quit},
	}
}
