// Package output builds and renders the blocks that make up the interpreter transcript.
package output

import (
	"fmt"

	"github.com/nikbrunner/bmterm/internal/model"
	"github.com/nikbrunner/bmterm/internal/tree"
)

// Kind distinguishes the visual category of a block.
type Kind int

const (
	KindEcho Kind = iota
	KindSuccess
	KindError
	KindInfo
	KindWarning
	KindList
	KindHelp
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindEcho:
		return "echo"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	case KindInfo:
		return "info"
	case KindWarning:
		return "warning"
	case KindList:
		return "list"
	case KindHelp:
		return "help"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Block is one entry in the transcript. All text fields are escaped on construction.
type Block struct {
	Kind    Kind
	Text    string      // message, list header or help title
	Items   []Item      // KindList
	Entries []HelpEntry // KindHelp
	Footer  string      // KindHelp
}

// Item is one bookmark or folder line in a list or tree block.
type Item struct {
	Folder bool
	Depth  int // 0 = flat list, >0 = tree indentation level
	Title  string
	URL    string // empty in tree blocks
	ID     string
}

// HelpEntry is one command line in the help block.
type HelpEntry struct {
	Usage string
	Desc  string
}

// Echo returns the block echoing a submitted command line.
func Echo(line string) Block {
	return Block{Kind: KindEcho, Text: Escape(line)}
}

// Success returns a success message block.
func Success(text string) Block {
	return Block{Kind: KindSuccess, Text: Escape(text)}
}

// Error returns an error message block.
func Error(text string) Block {
	return Block{Kind: KindError, Text: Escape(text)}
}

// Info returns an informational message block.
func Info(text string) Block {
	return Block{Kind: KindInfo, Text: Escape(text)}
}

// Warning returns a non-fatal warning block.
func Warning(text string) Block {
	return Block{Kind: KindWarning, Text: Escape(text)}
}

// Help returns the command reference block.
func Help(title string, entries []HelpEntry, footer string) Block {
	escaped := make([]HelpEntry, len(entries))
	for i, e := range entries {
		escaped[i] = HelpEntry{Usage: Escape(e.Usage), Desc: Escape(e.Desc)}
	}
	return Block{
		Kind:    KindHelp,
		Text:    Escape(title),
		Entries: escaped,
		Footer:  Escape(footer),
	}
}

// NodeList returns a flat list block of nodes with an optional header.
func NodeList(header string, nodes []model.Node) Block {
	items := make([]Item, len(nodes))
	for i := range nodes {
		items[i] = itemFor(&nodes[i], 0, true)
	}
	return Block{Kind: KindList, Text: Escape(header), Items: items}
}

// TreeBlock renders every node below root, root excluded, one item per node.
func TreeBlock(root *model.Node) Block {
	entries := tree.Flatten(root)
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = itemFor(e.Node, e.Depth, false)
	}
	return Block{Kind: KindList, Items: items}
}

func itemFor(n *model.Node, depth int, withURL bool) Item {
	item := Item{
		Folder: n.IsFolder(),
		Depth:  depth,
		Title:  Escape(n.DisplayTitle()),
		ID:     Escape(n.ID),
	}
	if withURL && !item.Folder {
		item.URL = Escape(n.URL)
	}
	return item
}
