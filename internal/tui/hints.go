package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "tab", "ctrl+y")
	Desc string // Short description (e.g., "complete", "copy output")
}

// hintFor builds a hint from a binding's help text.
func hintFor(b key.Binding) Hint {
	h := b.Help()
	return Hint{Key: h.Key, Desc: h.Desc}
}

// globalHints returns the hints shown in the bottom bar.
func (a App) globalHints() []Hint {
	return []Hint{
		hintFor(a.keys.Submit),
		hintFor(a.keys.Prev),
		hintFor(a.keys.Complete),
		hintFor(a.keys.ScrollUp),
		hintFor(a.keys.Copy),
		hintFor(a.keys.Quit),
	}
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "enter:run tab:complete"
func (a App) renderHints(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}
