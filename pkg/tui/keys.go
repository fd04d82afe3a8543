package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the analyzer TUI.
type KeyMap struct {
	Analyze     key.Binding
	Browse      key.Binding
	FocusToggle key.Binding
	Quit        key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Analyze: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "analyze"),
	),
	Browse: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "open in browser"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}
