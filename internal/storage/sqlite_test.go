package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/bmterm/internal/model"
	"github.com/nikbrunner/bmterm/internal/storage"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func newTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	s, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "bookmarks.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func create(t *testing.T, s storage.Store, parentID, title, url string) *model.Node {
	t.Helper()
	node, err := s.Create(context.Background(), model.CreateParams{
		ParentID: parentID,
		Title:    title,
		URL:      url,
	})
	if err != nil {
		t.Fatalf("failed to create %q: %v", title, err)
	}
	return node
}

func titles(nodes []model.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Title
	}
	return out
}

func TestSQLiteStore_SeedsPermanentFolders(t *testing.T) {
	s := newTestStore(t)

	root, err := s.GetTree(context.Background())
	assert.NilError(t, err)

	assert.Equal(t, root.ID, model.RootID)
	assert.Equal(t, root.ParentID, "")
	assert.Assert(t, is.Len(root.Children, 3))
	assert.Equal(t, root.Children[0].ID, model.BookmarksBarID)
	assert.Equal(t, root.Children[0].Title, "Bookmarks Bar")
	assert.Equal(t, root.Children[1].Title, "Other Bookmarks")
	assert.Equal(t, root.Children[2].Title, "Mobile Bookmarks")
	assert.Assert(t, root.Children[0].GUID != "")
}

func TestSQLiteStore_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "bookmarks.db")

	s, err := storage.NewSQLiteStore(dbPath)
	assert.NilError(t, err)
	defer s.Close()

	assert.Equal(t, s.Path(), dbPath)
}

func TestSQLiteStore_CreateAppendsInOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	work := create(t, s, model.BookmarksBarID, "Work", "")
	docs := create(t, s, model.BookmarksBarID, "Docs", "https://go.dev/doc")

	assert.Equal(t, work.ID, "4")
	assert.Equal(t, docs.ID, "5")
	assert.Equal(t, work.Index, 0)
	assert.Equal(t, docs.Index, 1)
	assert.Assert(t, work.IsFolder())
	assert.Assert(t, !docs.IsFolder())

	children, err := s.GetChildren(ctx, model.BookmarksBarID)
	assert.NilError(t, err)
	assert.DeepEqual(t, titles(children), []string{"Work", "Docs"})
	assert.Equal(t, children[1].URL, "https://go.dev/doc")
	assert.Equal(t, children[1].ParentID, model.BookmarksBarID)
}

func TestSQLiteStore_CreateKeepsDateAdded(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	added := time.Date(2009, 2, 13, 23, 31, 30, 0, time.UTC)

	node, err := s.Create(ctx, model.CreateParams{
		ParentID:  model.BookmarksBarID,
		Title:     "Go",
		URL:       "https://go.dev",
		DateAdded: added,
	})
	assert.NilError(t, err)
	assert.Assert(t, node.DateAdded.Equal(added), "got %v", node.DateAdded)

	children, err := s.GetChildren(ctx, model.BookmarksBarID)
	assert.NilError(t, err)
	assert.Assert(t, children[0].DateAdded.Equal(added), "got %v", children[0].DateAdded)

	fresh := create(t, s, model.BookmarksBarID, "Now", "https://example.com")
	assert.Assert(t, fresh.DateAdded.After(added))
}

func TestSQLiteStore_CreateErrors(t *testing.T) {
	s := newTestStore(t)
	bookmark := create(t, s, model.BookmarksBarID, "Docs", "https://go.dev/doc")

	tests := []struct {
		name     string
		parentID string
		want     error
	}{
		{"missing parent", "999", storage.ErrParentNotFound},
		{"non-numeric parent", "work", storage.ErrParentNotFound},
		{"root parent", model.RootID, storage.ErrRootFolder},
		{"bookmark parent", bookmark.ID, storage.ErrNotFolder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), model.CreateParams{
				ParentID: tt.parentID,
				Title:    "x",
				URL:      "https://example.com",
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSQLiteStore_GetChildrenUnknownFolder(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetChildren(context.Background(), "42")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLiteStore_GetSubtree(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	work := create(t, s, model.BookmarksBarID, "Work", "")
	create(t, s, work.ID, "Docs", "https://go.dev/doc")
	create(t, s, work.ID, "Blog", "https://go.dev/blog")

	sub, err := s.GetSubtree(ctx, work.ID)
	assert.NilError(t, err)
	assert.Equal(t, sub.Title, "Work")
	assert.Assert(t, is.Len(sub.Children, 2))
	assert.Equal(t, sub.Children[0].Title, "Docs")

	_, err = s.GetSubtree(ctx, "404")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLiteStore_RemoveBookmarkCompactsPositions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := create(t, s, model.BookmarksBarID, "A", "https://a.example")
	create(t, s, model.BookmarksBarID, "B", "https://b.example")
	create(t, s, model.BookmarksBarID, "C", "https://c.example")

	assert.NilError(t, s.Remove(ctx, a.ID))

	children, err := s.GetChildren(ctx, model.BookmarksBarID)
	assert.NilError(t, err)
	assert.DeepEqual(t, titles(children), []string{"B", "C"})
	assert.Equal(t, children[0].Index, 0)
	assert.Equal(t, children[1].Index, 1)
}

func TestSQLiteStore_RemoveNonEmptyFolderFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	work := create(t, s, model.BookmarksBarID, "Work", "")
	create(t, s, work.ID, "Docs", "https://go.dev/doc")

	err := s.Remove(ctx, work.ID)
	assert.ErrorIs(t, err, storage.ErrNotEmpty)

	// Nothing was deleted
	_, err = s.GetSubtree(ctx, work.ID)
	assert.NilError(t, err)
}

func TestSQLiteStore_RemoveTreeDeletesDescendants(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	work := create(t, s, model.BookmarksBarID, "Work", "")
	nested := create(t, s, work.ID, "Nested", "")
	docs := create(t, s, nested.ID, "Docs", "https://go.dev/doc")

	assert.NilError(t, s.RemoveTree(ctx, work.ID))

	for _, id := range []string{work.ID, nested.ID, docs.ID} {
		_, err := s.GetSubtree(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	}

	children, err := s.GetChildren(ctx, model.BookmarksBarID)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(children, 0))
}

func TestSQLiteStore_RemovePermanentFolderFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Remove(ctx, model.OtherBookmarksID), storage.ErrRootFolder)
	assert.ErrorIs(t, s.RemoveTree(ctx, model.RootID), storage.ErrRootFolder)
	assert.ErrorIs(t, s.Remove(ctx, "77"), storage.ErrNotFound)
}

func TestSQLiteStore_Move(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	docs := create(t, s, model.BookmarksBarID, "Docs", "https://go.dev/doc")
	create(t, s, model.BookmarksBarID, "Blog", "https://go.dev/blog")
	create(t, s, model.OtherBookmarksID, "Existing", "https://example.com")

	moved, err := s.Move(ctx, docs.ID, model.MoveDestination{ParentID: model.OtherBookmarksID})
	assert.NilError(t, err)
	assert.Equal(t, moved.Title, "Docs")
	assert.Equal(t, moved.ParentID, model.OtherBookmarksID)
	assert.Equal(t, moved.Index, 1)

	bar, err := s.GetChildren(ctx, model.BookmarksBarID)
	assert.NilError(t, err)
	assert.DeepEqual(t, titles(bar), []string{"Blog"})
	assert.Equal(t, bar[0].Index, 0)

	other, err := s.GetChildren(ctx, model.OtherBookmarksID)
	assert.NilError(t, err)
	assert.DeepEqual(t, titles(other), []string{"Existing", "Docs"})
}

func TestSQLiteStore_MoveWithinSameFolderGoesLast(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := create(t, s, model.BookmarksBarID, "A", "https://a.example")
	create(t, s, model.BookmarksBarID, "B", "https://b.example")

	moved, err := s.Move(ctx, a.ID, model.MoveDestination{ParentID: model.BookmarksBarID})
	assert.NilError(t, err)
	assert.Equal(t, moved.Index, 1)

	children, err := s.GetChildren(ctx, model.BookmarksBarID)
	assert.NilError(t, err)
	assert.DeepEqual(t, titles(children), []string{"B", "A"})
}

func TestSQLiteStore_MoveErrors(t *testing.T) {
	s := newTestStore(t)

	work := create(t, s, model.BookmarksBarID, "Work", "")
	nested := create(t, s, work.ID, "Nested", "")
	docs := create(t, s, nested.ID, "Docs", "https://go.dev/doc")

	tests := []struct {
		name string
		id   string
		dest string
		want error
	}{
		{"into itself", work.ID, work.ID, storage.ErrInvalidMove},
		{"into descendant", work.ID, nested.ID, storage.ErrInvalidMove},
		{"into bookmark", work.ID, docs.ID, storage.ErrNotFolder},
		{"into root", work.ID, model.RootID, storage.ErrRootFolder},
		{"permanent folder", model.BookmarksBarID, model.OtherBookmarksID, storage.ErrRootFolder},
		{"missing node", "500", model.OtherBookmarksID, storage.ErrNotFound},
		{"missing destination", docs.ID, "500", storage.ErrParentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Move(context.Background(), tt.id, model.MoveDestination{ParentID: tt.dest})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSQLiteStore_Search(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	work := create(t, s, model.BookmarksBarID, "Work", "")
	create(t, s, work.ID, "Go Docs", "https://go.dev/doc")
	create(t, s, work.ID, "Rust Book", "https://doc.rust-lang.org/book")
	create(t, s, model.OtherBookmarksID, "Hacker News", "https://news.ycombinator.com")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title substring", "docs", []string{"Go Docs"}},
		{"url substring", "doc", []string{"Go Docs", "Rust Book"}},
		{"every word must match", "doc rust", []string{"Rust Book"}},
		{"case insensitive", "HACKER", []string{"Hacker News"}},
		{"folder title", "work", []string{"Work"}},
		{"no match", "python", []string{}},
		{"blank query", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Search(ctx, tt.query)
			assert.NilError(t, err)
			assert.DeepEqual(t, titles(results), tt.want)
		})
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bookmarks.db")
	ctx := context.Background()

	s, err := storage.NewSQLiteStore(dbPath)
	assert.NilError(t, err)
	a := create(t, s, model.BookmarksBarID, "A", "https://a.example")
	b := create(t, s, model.BookmarksBarID, "B", "https://b.example")
	assert.NilError(t, s.Remove(ctx, b.ID))
	assert.NilError(t, s.Close())

	s, err = storage.NewSQLiteStore(dbPath)
	assert.NilError(t, err)
	defer s.Close()

	children, err := s.GetChildren(ctx, model.BookmarksBarID)
	assert.NilError(t, err)
	assert.DeepEqual(t, titles(children), []string{"A"})
	assert.Equal(t, children[0].ID, a.ID)
	assert.Assert(t, children[0].DateAdded.Equal(a.DateAdded))

	// Ids are never reused
	c := create(t, s, model.BookmarksBarID, "C", "https://c.example")
	assert.Equal(t, c.ID, "6")
}
