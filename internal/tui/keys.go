package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the sessions browser.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Search  key.Binding
	New     key.Binding
	Edit    key.Binding
	Submit  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Escape  key.Binding
	Quit    key.Binding

	// Column sort toggles
	SortDate       key.Binding
	SortTitle      key.Binding
	SortSType      key.Binding
	SortLength     key.Binding
	SortEventType  key.Binding
	SortPresenters key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new session"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		SortDate: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "sort by date"),
		),
		SortTitle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "sort by title"),
		),
		SortSType: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "sort by type"),
		),
		SortLength: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "sort by length"),
		),
		SortEventType: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "sort by event"),
		),
		SortPresenters: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "sort by presenters"),
		),
	}
}
