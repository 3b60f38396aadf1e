package storage

import (
	"context"
	"errors"

	"github.com/nikbrunner/bmterm/internal/model"
)

var (
	ErrNotFound       = errors.New("can't find bookmark for id")
	ErrParentNotFound = errors.New("can't find parent bookmark for id")
	ErrRootFolder     = errors.New("can't modify the root bookmark folders")
	ErrNotEmpty       = errors.New("can't remove non-empty folder")
	ErrNotFolder      = errors.New("parameter 'parentId' does not specify a folder")
	ErrInvalidMove    = errors.New("can't move a folder into itself or its descendants")
)

// Store is the bookmark service the interpreter talks to.
// Every method may block on I/O and honours ctx.
type Store interface {
	// GetTree returns the root node with all descendants attached.
	GetTree(ctx context.Context) (*model.Node, error)
	// GetChildren returns the direct children of a folder, without grandchildren.
	GetChildren(ctx context.Context, folderID string) ([]model.Node, error)
	// GetSubtree returns the node with its descendants attached.
	GetSubtree(ctx context.Context, id string) (*model.Node, error)
	Create(ctx context.Context, params model.CreateParams) (*model.Node, error)
	// Remove deletes a bookmark or an empty folder.
	Remove(ctx context.Context, id string) error
	// RemoveTree deletes a node and everything below it.
	RemoveTree(ctx context.Context, id string) error
	Move(ctx context.Context, id string, dest model.MoveDestination) (*model.Node, error)
	// Search returns nodes whose title or URL contains every word of query.
	Search(ctx context.Context, query string) ([]model.Node, error)
}
