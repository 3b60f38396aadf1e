// Package layout holds sizing configuration and text helpers for the TUI.
package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Transcript TranscriptConfig
	Input      InputConfig
	Text       TextConfig
}

// TranscriptConfig holds sizing for rendered output blocks.
type TranscriptConfig struct {
	// TitleMaxWidth caps the title column of list lines.
	TitleMaxWidth int

	// MinURLWidth is the narrowest the URL column is allowed to get before
	// it is dropped from a list line.
	MinURLWidth int
}

// InputConfig holds prompt input configuration.
type InputConfig struct {
	CharLimit int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Transcript: TranscriptConfig{
			TitleMaxWidth: 48,
			MinURLWidth:   12,
		},
		Input: InputConfig{
			CharLimit: 2048,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
