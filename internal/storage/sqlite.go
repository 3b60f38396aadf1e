package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/bmterm/internal/model"
)

const currentSchemaVersion = 2

const nodeColumns = "id, guid, parent_id, position, title, url, date_added"

const deleteSubtreeSQL = `
	WITH RECURSIVE subtree(id) AS (
		SELECT ?
		UNION ALL
		SELECT nodes.id FROM nodes JOIN subtree ON nodes.parent_id = subtree.id
	)
	DELETE FROM nodes WHERE id IN (SELECT id FROM subtree)
`

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at path and seeds the permanent folders.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Pragmas apply per connection, so keep exactly one.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStore{db: db, path: path, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < currentSchemaVersion {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStore) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS nodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			guid TEXT NOT NULL,
			parent_id INTEGER,
			position INTEGER NOT NULL DEFAULT 0,
			title TEXT NOT NULL DEFAULT '',
			url TEXT,
			date_added TEXT NOT NULL,
			FOREIGN KEY (parent_id) REFERENCES nodes(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_nodes_parent_position ON nodes(parent_id, position);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 seeds the root and the permanent top-level folders.
func (s *SQLiteStore) migrateV2() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	root := sql.NullInt64{Int64: 0, Valid: true}
	permanent := []struct {
		id       int64
		parentID sql.NullInt64
		position int
		title    string
	}{
		{0, sql.NullInt64{}, 0, ""},
		{1, root, 0, "Bookmarks Bar"},
		{2, root, 1, "Other Bookmarks"},
		{3, root, 2, "Mobile Bookmarks"},
	}

	dateAdded := formatTime(s.now())
	for _, p := range permanent {
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO nodes (id, guid, parent_id, position, title, url, date_added)
			VALUES (?, ?, ?, ?, ?, NULL, ?)
		`, p.id, model.GenerateGUID(), p.parentID, p.position, p.title, dateAdded); err != nil {
			return err
		}
	}

	if _, err := tx.Exec("UPDATE schema_version SET version = ?", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}

// GetTree loads every node and returns the root with children attached in position order.
func (s *SQLiteStore) GetTree(ctx context.Context) (*model.Node, error) {
	root, _, err := s.loadAll(ctx, s.db)
	return root, err
}

// GetSubtree returns the node with the given id and its descendants.
func (s *SQLiteStore) GetSubtree(ctx context.Context, id string) (*model.Node, error) {
	_, byID, err := s.loadAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	node, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return node, nil
}

// GetChildren returns the direct children of folderID in position order.
func (s *SQLiteStore) GetChildren(ctx context.Context, folderID string) ([]model.Node, error) {
	id, err := parseID(folderID, ErrNotFound)
	if err != nil {
		return nil, err
	}
	if _, err := s.getNode(ctx, s.db, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+nodeColumns+" FROM nodes WHERE parent_id = ? ORDER BY position, id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	children := []model.Node{}
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return children, nil
}

// Create appends a new bookmark or folder to the end of its parent folder.
func (s *SQLiteStore) Create(ctx context.Context, params model.CreateParams) (*model.Node, error) {
	parentID, err := parseID(params.ParentID, ErrParentNotFound)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	parent, err := s.getNode(ctx, tx, parentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrParentNotFound, params.ParentID)
		}
		return nil, err
	}
	if parent.ID == model.RootID {
		return nil, ErrRootFolder
	}
	if !parent.IsFolder() {
		return nil, ErrNotFolder
	}

	position, err := countChildren(ctx, tx, parentID, -1)
	if err != nil {
		return nil, err
	}

	dateAdded := params.DateAdded
	if dateAdded.IsZero() {
		dateAdded = s.now()
	}

	node := model.Node{
		ParentID:  parent.ID,
		GUID:      model.GenerateGUID(),
		Index:     position,
		Title:     params.Title,
		URL:       params.URL,
		DateAdded: dateAdded.UTC().Truncate(time.Second),
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO nodes (guid, parent_id, position, title, url, date_added)
		VALUES (?, ?, ?, ?, ?, ?)
	`, node.GUID, parentID, node.Index, node.Title, nullableURL(node.URL), formatTime(node.DateAdded))
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	node.ID = strconv.FormatInt(id, 10)

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &node, nil
}

// Remove deletes a bookmark or an empty folder.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	return s.remove(ctx, id, false)
}

// RemoveTree deletes a node together with all of its descendants.
func (s *SQLiteStore) RemoveTree(ctx context.Context, id string) error {
	return s.remove(ctx, id, true)
}

func (s *SQLiteStore) remove(ctx context.Context, id string, recursive bool) error {
	nodeID, err := parseID(id, ErrNotFound)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	node, err := s.getNode(ctx, tx, nodeID)
	if err != nil {
		return err
	}
	if node.IsPermanent() {
		return ErrRootFolder
	}

	if !recursive && node.IsFolder() {
		count, err := countChildren(ctx, tx, nodeID, -1)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrNotEmpty
		}
	}

	if _, err := tx.ExecContext(ctx, deleteSubtreeSQL, nodeID); err != nil {
		return err
	}

	// Keep sibling positions dense
	if _, err := tx.ExecContext(ctx,
		"UPDATE nodes SET position = position - 1 WHERE parent_id = ? AND position > ?",
		mustID(node.ParentID), node.Index,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// Move reparents a node to the end of dest's folder and returns the moved node.
func (s *SQLiteStore) Move(ctx context.Context, id string, dest model.MoveDestination) (*model.Node, error) {
	nodeID, err := parseID(id, ErrNotFound)
	if err != nil {
		return nil, err
	}
	destID, err := parseID(dest.ParentID, ErrParentNotFound)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	node, err := s.getNode(ctx, tx, nodeID)
	if err != nil {
		return nil, err
	}
	if node.IsPermanent() {
		return nil, ErrRootFolder
	}

	parent, err := s.getNode(ctx, tx, destID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrParentNotFound, dest.ParentID)
		}
		return nil, err
	}
	if parent.ID == model.RootID {
		return nil, ErrRootFolder
	}
	if !parent.IsFolder() {
		return nil, ErrNotFolder
	}

	// Walk up from the destination; meeting the node means a move into itself.
	for cur := parent; ; {
		if cur.ID == node.ID {
			return nil, ErrInvalidMove
		}
		if cur.ParentID == "" {
			break
		}
		cur, err = s.getNode(ctx, tx, mustID(cur.ParentID))
		if err != nil {
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE nodes SET position = position - 1 WHERE parent_id = ? AND position > ?",
		mustID(node.ParentID), node.Index,
	); err != nil {
		return nil, err
	}

	position, err := countChildren(ctx, tx, destID, nodeID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE nodes SET parent_id = ?, position = ? WHERE id = ?",
		destID, position, nodeID,
	); err != nil {
		return nil, err
	}

	moved, err := s.getNode(ctx, tx, nodeID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return moved, nil
}

// Search matches every word of query, case-insensitively, against title or URL.
// The root is never returned.
func (s *SQLiteStore) Search(ctx context.Context, query string) ([]model.Node, error) {
	results := []model.Node{}

	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return results, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+nodeColumns+" FROM nodes WHERE parent_id IS NOT NULL ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		if matchesAll(n, words) {
			results = append(results, *n)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// loadAll reads every node and links children to parents.
func (s *SQLiteStore) loadAll(ctx context.Context, q querier) (*model.Node, map[string]*model.Node, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+nodeColumns+" FROM nodes ORDER BY parent_id, position, id")
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var ordered []*model.Node
	byID := make(map[string]*model.Node)
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, nil, err
		}
		ordered = append(ordered, n)
		byID[n.ID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var root *model.Node
	for _, n := range ordered {
		if n.ParentID == "" {
			root = n
			continue
		}
		if parent, ok := byID[n.ParentID]; ok {
			parent.Children = append(parent.Children, n)
		}
	}
	if root == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, model.RootID)
	}

	return root, byID, nil
}

// getNode loads a single node without children.
func (s *SQLiteStore) getNode(ctx context.Context, q querier, id int64) (*model.Node, error) {
	row := q.QueryRowContext(ctx, "SELECT "+nodeColumns+" FROM nodes WHERE id = ?", id)
	n, err := scanNode(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return nil, err
	}
	return n, nil
}

// countChildren counts the children of parentID, ignoring exclude.
func countChildren(ctx context.Context, q querier, parentID, exclude int64) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM nodes WHERE parent_id = ? AND id != ?", parentID, exclude,
	).Scan(&count)
	return count, err
}

func scanNode(row rowScanner) (*model.Node, error) {
	var (
		n         model.Node
		id        int64
		parentID  sql.NullInt64
		url       sql.NullString
		dateAdded string
	)

	if err := row.Scan(&id, &n.GUID, &parentID, &n.Index, &n.Title, &url, &dateAdded); err != nil {
		return nil, err
	}

	n.ID = strconv.FormatInt(id, 10)
	if parentID.Valid {
		n.ParentID = strconv.FormatInt(parentID.Int64, 10)
	}
	n.URL = url.String
	n.DateAdded, _ = time.Parse(time.RFC3339, dateAdded)

	return &n, nil
}

func matchesAll(n *model.Node, words []string) bool {
	title := strings.ToLower(n.Title)
	url := strings.ToLower(n.URL)
	for _, w := range words {
		if !strings.Contains(title, w) && !strings.Contains(url, w) {
			return false
		}
	}
	return true
}

// parseID converts a user-supplied id; anything non-numeric cannot exist.
func parseID(id string, notFound error) (int64, error) {
	v, err := strconv.ParseInt(id, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s", notFound, id)
	}
	return v, nil
}

// mustID converts an id read back from the database.
func mustID(id string) int64 {
	v, _ := strconv.ParseInt(id, 10, 64)
	return v
}

func nullableURL(url string) sql.NullString {
	return sql.NullString{String: url, Valid: url != ""}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
