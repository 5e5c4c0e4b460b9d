package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines key bindings for the dashboard.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
}
