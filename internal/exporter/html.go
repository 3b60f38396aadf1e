// Package exporter writes the bookmark tree as Netscape bookmark HTML.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bmterm/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders every node below root in Netscape bookmark HTML format.
// The root itself is not written; its children become the top-level entries.
func ExportHTML(root *model.Node) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	if root != nil {
		writeChildren(&b, root, 1)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeChildren writes the children of parent in store order.
func writeChildren(b *strings.Builder, parent *model.Node, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, n := range parent.Children {
		if !n.IsFolder() {
			fmt.Fprintf(b,
				"%s<DT><A HREF=\"%s\"%s>%s</A>\n",
				prefix,
				html.EscapeString(n.URL),
				addDate(n.DateAdded),
				html.EscapeString(n.Title),
			)
			continue
		}

		attrs := addDate(n.DateAdded)
		if n.ID == model.BookmarksBarID {
			attrs += ` PERSONAL_TOOLBAR_FOLDER="true"`
		}
		fmt.Fprintf(b, "%s<DT><H3%s>%s</H3>\n", prefix, attrs, html.EscapeString(n.Title))
		fmt.Fprintf(b, "%s<DL><p>\n", prefix)
		writeChildren(b, n, indent+1)
		fmt.Fprintf(b, "%s</DL><p>\n", prefix)
	}
}

func addDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf(" ADD_DATE=\"%d\"", t.Unix())
}
