package model

import "time"

// Well-known ids of the permanent folders every tree starts with.
const (
	RootID            = "0"
	BookmarksBarID    = "1"
	OtherBookmarksID  = "2"
	MobileBookmarksID = "3"
)

// Node is a single entry in the bookmark tree.
// A node with an empty URL is a folder; any other node is a bookmark.
type Node struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parentId,omitempty"` // empty = root
	GUID      string    `json:"guid"`
	Index     int       `json:"index"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	DateAdded time.Time `json:"dateAdded"`
	Children  []*Node   `json:"children,omitempty"`
}

// IsFolder returns true if the node has no URL.
func (n *Node) IsFolder() bool {
	return n.URL == ""
}

// IsPermanent returns true for the root and the well-known top-level folders.
func (n *Node) IsPermanent() bool {
	return IsPermanentID(n.ID)
}

// DisplayTitle returns the title, or "Untitled"/"Untitled Folder" when empty.
func (n *Node) DisplayTitle() string {
	if n.IsFolder() {
		return n.TitleOr("Untitled Folder")
	}
	return n.TitleOr("Untitled")
}

// TitleOr returns the title, or fallback when the title is empty.
func (n *Node) TitleOr(fallback string) string {
	if n.Title == "" {
		return fallback
	}
	return n.Title
}

// IsPermanentID reports whether id names the root or a permanent folder.
func IsPermanentID(id string) bool {
	switch id {
	case RootID, BookmarksBarID, OtherBookmarksID, MobileBookmarksID:
		return true
	}
	return false
}

// CreateParams holds parameters for creating a node.
// An empty URL creates a folder.
type CreateParams struct {
	ParentID  string
	Title     string
	URL       string
	DateAdded time.Time // zero means now
}

// MoveDestination names the folder a node is moved into.
type MoveDestination struct {
	ParentID string
}
