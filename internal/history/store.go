// Package history persists a record of processed torrents so the watch
// service never imports the same download twice.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"
)

//go:embed schema.sql
var schemaSQL string

// File categories recorded per imported file.
const (
	CategoryVideo    = "video"
	CategorySubtitle = "subtitle"
	CategoryOther    = "other"
)

// Entry is one processed torrent.
type Entry struct {
	ID        int64
	Hash      string // torrent info hash; unique
	Title     string
	SourceDir string
	Files     []FileEntry
	CreatedAt time.Time
}

// FileEntry is one file observed during an import.
type FileEntry struct {
	ID       int64
	EntryID  int64
	Path     string
	Category string
}

// Filter specifies criteria for listing history.
type Filter struct {
	Hash  *string
	Limit int
}

// Store persists import records.
type Store struct {
	db *sql.DB
}

// NewStore creates a history store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init applies the schema. Safe to call on an existing database.
func (s *Store) Init() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply history schema: %w", err)
	}
	return nil
}

// Add records a processed torrent and its files.
func (s *Store) Add(e *Entry) error {
	now := time.Now()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(`
		INSERT INTO imports (hash, title, source_dir, created_at)
		VALUES (?, ?, ?, ?)`,
		e.Hash, e.Title, e.SourceDir, now,
	)
	if err != nil {
		return fmt.Errorf("insert import: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	for idx := range e.Files {
		f := &e.Files[idx]
		res, err := tx.Exec(`
			INSERT INTO import_files (import_id, path, category)
			VALUES (?, ?, ?)`,
			id, f.Path, f.Category,
		)
		if err != nil {
			return fmt.Errorf("insert import file: %w", err)
		}
		f.ID, _ = res.LastInsertId()
		f.EntryID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	e.ID = id
	e.CreatedAt = now
	return nil
}

// Seen reports whether a torrent hash has already been imported.
func (s *Store) Seen(hash string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM imports WHERE hash = ?`, hash).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query imports: %w", err)
	}
	return n > 0, nil
}

// List returns import entries matching the filter, most recent first.
// File rows are not populated; use Files for that.
func (s *Store) List(f Filter) ([]*Entry, error) {
	var conditions []string
	var args []any

	if f.Hash != nil {
		conditions = append(conditions, "hash = ?")
		args = append(args, *f.Hash)
	}

	query := `SELECT id, hash, title, source_dir, created_at FROM imports`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Hash, &e.Title, &e.SourceDir, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Files returns the file rows recorded for one import entry.
func (s *Store) Files(entryID int64) ([]FileEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, import_id, path, category
		FROM import_files WHERE import_id = ? ORDER BY id`, entryID)
	if err != nil {
		return nil, fmt.Errorf("query import files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []FileEntry
	for rows.Next() {
		var f FileEntry
		if err := rows.Scan(&f.ID, &f.EntryID, &f.Path, &f.Category); err != nil {
			return nil, fmt.Errorf("scan import file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
