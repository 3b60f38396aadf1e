package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the prompt key bindings. Keys not bound here go to the input field.
type KeyMap struct {
	Submit     key.Binding
	Prev       key.Binding
	Next       key.Binding
	Complete   key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Copy       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default shell-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "history"),
		),
		// Described by Prev's hint.
		Next: key.NewBinding(
			key.WithKeys("down"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup/pgdn", "scroll"),
		),
		// Described by ScrollUp's hint.
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy output"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}
