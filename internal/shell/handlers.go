package shell

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/nikbrunner/bmterm/internal/model"
	"github.com/nikbrunner/bmterm/internal/output"
	"github.com/nikbrunner/bmterm/internal/tree"
)

const quotingNote = `Use quotes for titles/names with spaces: add "https://example.com" "My Site"`

func helpBlock() output.Block {
	entries := make([]output.HelpEntry, 0, len(registry))
	for _, def := range registry {
		entries = append(entries, output.HelpEntry{Usage: def.synopsis, Desc: def.desc})
	}
	return output.Help("AVAILABLE COMMANDS", entries, quotingNote)
}

func (i *Interpreter) list(ctx context.Context, c ListCommand) ([]output.Block, error) {
	root, err := i.store.GetTree(ctx)
	if err != nil {
		return nil, err
	}

	var nodes []model.Node
	if c.Path != "" {
		folder := tree.Find(root, c.Path)
		if folder == nil {
			return []output.Block{output.Error("Folder not found: " + c.Path)}, nil
		}
		nodes, err = i.store.GetChildren(ctx, folder.ID)
		if err != nil {
			return nil, err
		}
	} else {
		nodes = make([]model.Node, 0, len(root.Children))
		for _, child := range root.Children {
			nodes = append(nodes, *child)
		}
	}

	if len(nodes) == 0 {
		return []output.Block{output.Info("No bookmarks found")}, nil
	}
	return []output.Block{output.NodeList("", nodes)}, nil
}

func (i *Interpreter) add(ctx context.Context, c AddCommand) []output.Block {
	if !isValidURL(c.URL) {
		return []output.Block{output.Error("Invalid URL: " + c.URL)}
	}

	folderID := c.FolderID
	if folderID == "" {
		folderID = i.defaultFolderID
	}

	node, err := i.store.Create(ctx, model.CreateParams{ParentID: folderID, Title: c.Title, URL: c.URL})
	if err != nil {
		i.logger.Info("add bookmark failed", "folder", folderID, "error", err)
		return []output.Block{output.Error("Failed to add bookmark: " + err.Error())}
	}

	i.logger.Debug("bookmark added", "id", node.ID, "folder", folderID)
	return []output.Block{output.Success(fmt.Sprintf("✓ Bookmark added: %s [%s]", c.Title, node.ID))}
}

func (i *Interpreter) remove(ctx context.Context, c RemoveCommand) []output.Block {
	var blocks []output.Block
	fail := func(err error) []output.Block {
		i.logger.Info("remove failed", "id", c.ID, "error", err)
		return append(blocks, output.Error("Failed to remove: "+err.Error()))
	}

	node, err := i.store.GetSubtree(ctx, c.ID)
	if err != nil {
		return fail(err)
	}

	if n := len(node.Children); n > 0 {
		blocks = append(blocks, output.Warning(fmt.Sprintf("⚠ Removing folder with %d items", n)))
		err = i.store.RemoveTree(ctx, c.ID)
	} else {
		err = i.store.Remove(ctx, c.ID)
	}
	if err != nil {
		return fail(err)
	}

	i.logger.Debug("node removed", "id", c.ID)
	return append(blocks, output.Success("✓ Removed: "+node.TitleOr("Untitled")))
}

func (i *Interpreter) search(ctx context.Context, c SearchCommand) ([]output.Block, error) {
	results, err := i.store.Search(ctx, c.Query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []output.Block{output.Info("No results found for: " + c.Query)}, nil
	}
	header := fmt.Sprintf("Found %d result(s):", len(results))
	return []output.Block{output.NodeList(header, results)}, nil
}

func (i *Interpreter) mkdir(ctx context.Context, c MkdirCommand) []output.Block {
	parentID := c.ParentID
	if parentID == "" {
		parentID = i.defaultFolderID
	}

	folder, err := i.store.Create(ctx, model.CreateParams{ParentID: parentID, Title: c.Title})
	if err != nil {
		i.logger.Info("create folder failed", "parent", parentID, "error", err)
		return []output.Block{output.Error("Failed to create folder: " + err.Error())}
	}

	i.logger.Debug("folder created", "id", folder.ID, "parent", parentID)
	return []output.Block{output.Success(fmt.Sprintf("✓ Folder created: %s [%s]", c.Title, folder.ID))}
}

func (i *Interpreter) move(ctx context.Context, c MoveCommand) []output.Block {
	node, err := i.store.Move(ctx, c.ID, model.MoveDestination{ParentID: c.FolderID})
	if err != nil {
		i.logger.Info("move failed", "id", c.ID, "folder", c.FolderID, "error", err)
		return []output.Block{output.Error("Failed to move: " + err.Error())}
	}
	return []output.Block{output.Success("✓ Moved: " + node.TitleOr("Untitled"))}
}

func (i *Interpreter) showTree(ctx context.Context) ([]output.Block, error) {
	root, err := i.store.GetTree(ctx)
	if err != nil {
		return nil, err
	}
	return []output.Block{output.TreeBlock(root)}, nil
}

// isValidURL accepts absolute URLs. Schemes that address a host must have one.
func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ws", "wss", "ftp":
		return u.Host != ""
	}
	return true
}
