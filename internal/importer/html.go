// Package importer reads Netscape bookmark HTML files, the format every
// browser exports, and loads them into a storage.Store.
package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/bmterm/internal/model"
	"github.com/nikbrunner/bmterm/internal/storage"
	"golang.org/x/net/html"
)

// Stats counts what Import created.
type Stats struct {
	Folders   int
	Bookmarks int
}

// ParseHTML parses Netscape bookmark HTML and returns the top-level nodes with
// their descendants attached. Returned nodes have no IDs yet.
func ParseHTML(r io.Reader) ([]*model.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	top := &model.Node{}

	// containers[len-1] receives parsed nodes; a folder becomes the container
	// once its <DL> is reached.
	containers := []*model.Node{top}
	var pendingFolder *model.Node

	current := func() *model.Node {
		return containers[len(containers)-1]
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				if name != "" {
					folder := &model.Node{
						Title:     name,
						DateAdded: parseAddDate(n),
						Children:  []*model.Node{},
					}
					current().Children = append(current().Children, folder)
					pendingFolder = folder
				}
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}
				pendingFolder = nil

				current().Children = append(current().Children, &model.Node{
					Title:     title,
					URL:       href,
					DateAdded: parseAddDate(n),
				})
				return

			case "dl":
				pushed := false
				if pendingFolder != nil {
					containers = append(containers, pendingFolder)
					pendingFolder = nil
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					containers = containers[:len(containers)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return top.Children, nil
}

// Import creates nodes and their descendants below parentID, preserving order.
// It stops at the first store error; nodes created before it are kept.
func Import(ctx context.Context, store storage.Store, parentID string, nodes []*model.Node) (Stats, error) {
	type job struct {
		node     *model.Node
		parentID string
	}

	var stats Stats
	stack := make([]job, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, job{nodes[i], parentID})
	}

	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		created, err := store.Create(ctx, model.CreateParams{
			ParentID:  j.parentID,
			Title:     j.node.Title,
			URL:       j.node.URL,
			DateAdded: j.node.DateAdded,
		})
		if err != nil {
			return stats, fmt.Errorf("create %q: %w", j.node.Title, err)
		}

		if j.node.IsFolder() {
			stats.Folders++
		} else {
			stats.Bookmarks++
		}

		for i := len(j.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, job{j.node.Children[i], created.ID})
		}
	}

	return stats, nil
}

// parseAddDate reads the ADD_DATE attribute (unix seconds), defaulting to now.
func parseAddDate(n *html.Node) time.Time {
	if addDate := getAttr(n, "add_date"); addDate != "" {
		if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
			return time.Unix(ts, 0)
		}
	}
	return time.Now()
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
