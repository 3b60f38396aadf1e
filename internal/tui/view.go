package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/bmterm/internal/output"
	"github.com/nikbrunner/bmterm/internal/tui/layout"
)

// renderView stacks the transcript, the prompt and the hint bar.
func (a App) renderView() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		a.viewport.View(),
		a.input.View(),
		a.renderHelpBar(),
	)
	return a.styles.App.Render(content)
}

// renderHelpBar shows the status message if there is one, otherwise the key hints.
func (a App) renderHelpBar() string {
	if a.message == "" {
		return a.renderHints(a.globalHints())
	}
	if a.messageType == MessageError {
		return a.styles.Error.Render("✗ " + a.message)
	}
	return a.styles.Info.Render(a.message)
}

func (a App) renderTranscript() string {
	blocks := a.transcript.Blocks()
	rendered := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if s := a.renderBlock(b); s != "" {
			rendered = append(rendered, s)
		}
	}
	return strings.Join(rendered, "\n")
}

func (a App) renderBlock(b output.Block) string {
	switch b.Kind {
	case output.KindEcho:
		return a.styles.Prompt.Render("❯ ") + a.styles.Echo.Render(b.Text)
	case output.KindSuccess:
		return a.styles.Success.Render(b.Text)
	case output.KindError:
		return a.styles.Error.Render(b.Text)
	case output.KindInfo:
		return a.styles.Info.Render(b.Text)
	case output.KindWarning:
		return a.styles.Warning.Render(b.Text)
	case output.KindList:
		return a.renderList(b)
	case output.KindHelp:
		return a.renderHelp(b)
	}
	return b.Text
}

func (a App) renderList(b output.Block) string {
	lines := make([]string, 0, len(b.Items)+1)
	if b.Text != "" {
		lines = append(lines, a.styles.Info.Render(b.Text))
	}
	for _, item := range b.Items {
		lines = append(lines, a.renderItem(item))
	}
	return strings.Join(lines, "\n")
}

// renderItem styles one list or tree line, truncating the title and URL to
// the viewport width.
func (a App) renderItem(item output.Item) string {
	cfg := a.layoutConfig
	var sb strings.Builder
	used := 0

	if item.Depth > 0 {
		prefix := strings.Repeat("  ", item.Depth) + "├─ "
		sb.WriteString(a.styles.Branch.Render(prefix))
		used += layout.VisibleLength(prefix)
	}

	marker, style := "• ", a.styles.Bookmark
	if item.Folder {
		marker, style = "▸ ", a.styles.Folder
	} else if item.Depth > 0 {
		marker = ""
	}
	id := "[" + item.ID + "]"
	used += layout.VisibleLength(marker) + len(id) + 2

	titleWidth := min(cfg.Transcript.TitleMaxWidth, a.viewport.Width-used)
	title, _ := layout.TruncateText(item.Title, titleWidth, cfg.Text)
	sb.WriteString(style.Render(marker + title))
	used += layout.VisibleLength(title)

	if item.URL != "" {
		if urlWidth := a.viewport.Width - used - 2; urlWidth >= cfg.Transcript.MinURLWidth {
			url, _ := layout.TruncateText(item.URL, urlWidth, cfg.Text)
			sb.WriteString("  ")
			sb.WriteString(a.styles.URL.Render(url))
		}
	}

	sb.WriteString("  ")
	sb.WriteString(a.styles.ID.Render(id))
	return sb.String()
}

func (a App) renderHelp(b output.Block) string {
	width := 0
	for _, e := range b.Entries {
		width = max(width, layout.VisibleLength(e.Usage))
	}

	lines := []string{a.styles.Title.Render(b.Text)}
	for _, e := range b.Entries {
		usage := e.Usage + strings.Repeat(" ", width-layout.VisibleLength(e.Usage))
		lines = append(lines, "  "+a.styles.Usage.Render(usage)+"  "+a.styles.Info.Render("- "+e.Desc))
	}
	if b.Footer != "" {
		lines = append(lines, "", a.styles.Info.Render(b.Footer))
	}
	return strings.Join(lines, "\n")
}
