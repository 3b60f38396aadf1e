package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App      lipgloss.Style
	Prompt   lipgloss.Style
	Echo     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Warning  lipgloss.Style
	Folder   lipgloss.Style
	Bookmark lipgloss.Style
	URL      lipgloss.Style
	ID       lipgloss.Style
	Branch   lipgloss.Style
	Title    lipgloss.Style // help section title
	Usage    lipgloss.Style // help command synopsis
	HintKey  lipgloss.Style // Key portion of hints (e.g., "enter", "tab")
	HintDesc lipgloss.Style // Description portion of hints (e.g., "run", "complete")
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal

	return Styles{
		App: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1),

		Prompt: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Echo: lipgloss.NewStyle().
			Foreground(primary),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}),

		Info: lipgloss.NewStyle().
			Foreground(accent),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}),

		Folder: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Bookmark: lipgloss.NewStyle().
			Foreground(primary),

		URL: lipgloss.NewStyle().
			Foreground(subtle).
			Underline(true),

		ID: lipgloss.NewStyle().
			Foreground(subtle),

		Branch: lipgloss.NewStyle().
			Foreground(subtle),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Usage: lipgloss.NewStyle().
			Foreground(primary),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
