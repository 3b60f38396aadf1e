package output

import (
	"strings"
)

const (
	promptGlyph = "❯ "
	branchGlyph = "├─ "
	folderGlyph = "▸ "
	bulletGlyph = "• "
)

// PlainRenderer renders blocks as unstyled text.
type PlainRenderer struct{}

// Render returns the block as plain text without a trailing newline.
func (PlainRenderer) Render(b Block) string {
	switch b.Kind {
	case KindEcho:
		return promptGlyph + b.Text
	case KindList:
		lines := make([]string, 0, len(b.Items)+1)
		if b.Text != "" {
			lines = append(lines, b.Text)
		}
		for _, item := range b.Items {
			lines = append(lines, ItemLine(item))
		}
		return strings.Join(lines, "\n")
	case KindHelp:
		return renderHelp(b)
	default:
		return b.Text
	}
}

// RenderAll renders blocks one after another, each terminated by a newline.
// Blocks that render to nothing are skipped.
func (r PlainRenderer) RenderAll(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		text := r.Render(b)
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ItemLine formats a single list or tree item.
//
//	flat:  "• Docs  https://go.dev/doc  [5]"   "▸ Work  [4]"
//	tree:  "    ├─ Docs  [5]"                  "  ├─ ▸ Work  [4]"
func ItemLine(item Item) string {
	var sb strings.Builder
	if item.Depth > 0 {
		sb.WriteString(strings.Repeat("  ", item.Depth))
		sb.WriteString(branchGlyph)
	}
	if item.Folder {
		sb.WriteString(folderGlyph)
	} else if item.Depth == 0 {
		sb.WriteString(bulletGlyph)
	}
	sb.WriteString(item.Title)
	if item.URL != "" {
		sb.WriteString("  ")
		sb.WriteString(item.URL)
	}
	sb.WriteString("  [")
	sb.WriteString(item.ID)
	sb.WriteString("]")
	return sb.String()
}

func renderHelp(b Block) string {
	width := 0
	for _, e := range b.Entries {
		if n := len([]rune(e.Usage)); n > width {
			width = n
		}
	}

	lines := []string{b.Text}
	for _, e := range b.Entries {
		pad := width - len([]rune(e.Usage))
		lines = append(lines, "  "+e.Usage+strings.Repeat(" ", pad)+"  - "+e.Desc)
	}
	if b.Footer != "" {
		lines = append(lines, "", b.Footer)
	}
	return strings.Join(lines, "\n")
}
