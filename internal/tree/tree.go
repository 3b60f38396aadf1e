// Package tree walks bookmark trees without recursion.
package tree

import "github.com/nikbrunner/bmterm/internal/model"

// Entry is one node of a flattened tree with its depth below the root.
type Entry struct {
	Node  *model.Node
	Depth int
}

type frame struct {
	node  *model.Node
	depth int
}

// Walk visits root and its descendants depth-first in pre-order, children in
// store order, until fn returns false. A node reachable twice is visited once.
func Walk(root *model.Node, fn func(n *model.Node, depth int) bool) {
	if root == nil {
		return
	}

	stack := []frame{{node: root, depth: 0}}
	visited := make(map[*model.Node]bool)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node == nil || visited[f.node] {
			continue
		}
		visited[f.node] = true

		if !fn(f.node, f.depth) {
			return
		}

		// Push in reverse so the first child is popped first
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], depth: f.depth + 1})
		}
	}
}

// Find returns the first node in pre-order whose ID or Title equals key.
// Matching is exact and case-sensitive. Returns nil if nothing matches.
func Find(root *model.Node, key string) *model.Node {
	var found *model.Node
	Walk(root, func(n *model.Node, _ int) bool {
		if n.ID == key || n.Title == key {
			found = n
			return false
		}
		return true
	})
	return found
}

// Flatten returns every node below root in pre-order. The root is omitted;
// its children have depth 1.
func Flatten(root *model.Node) []Entry {
	var entries []Entry
	Walk(root, func(n *model.Node, depth int) bool {
		if depth > 0 {
			entries = append(entries, Entry{Node: n, Depth: depth})
		}
		return true
	})
	return entries
}

// Count returns the number of nodes below root, split into folders and bookmarks.
func Count(root *model.Node) (folders, bookmarks int) {
	for _, e := range Flatten(root) {
		if e.Node.IsFolder() {
			folders++
		} else {
			bookmarks++
		}
	}
	return folders, bookmarks
}
