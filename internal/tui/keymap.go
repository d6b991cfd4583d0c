package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the front-end handles itself; everything else
// falls through to the text field
type KeyMap struct {
	Quit        key.Binding
	ClearLine   key.Binding
	ToggleTheme key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ClearLine: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear line"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle theme"),
		),
	}
}
