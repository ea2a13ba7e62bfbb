package posts

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Store is a sqlite index of post records. It lets a deployment ship the
// catalog separately from the markdown tree.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the server read while the import command rewrites the index.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    author TEXT NOT NULL,
    date TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    tags TEXT NOT NULL,
    content_path TEXT NOT NULL,
    reading_time INTEGER NOT NULL DEFAULT 1
);
`)
	return err
}

// SaveAll replaces the whole index with records in one transaction.
func (s *Store) SaveAll(records []Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM posts`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO posts (slug, title, author, date, excerpt, tags, content_path, reading_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range records {
		if _, err := stmt.Exec(r.Slug, r.Title, r.Author, r.Date, r.Excerpt, JoinTags(r.Tags), r.ContentPath, r.ReadingTime); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// List returns every record ordered by date descending.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(`SELECT slug, title, author, date, excerpt, tags, content_path, reading_time FROM posts ORDER BY date DESC, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var tags string
		if err := rows.Scan(&r.Slug, &r.Title, &r.Author, &r.Date, &r.Excerpt, &tags, &r.ContentPath, &r.ReadingTime); err != nil {
			return nil, err
		}
		r.Tags = ParseTags(tags)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Get returns a single record by slug, or ErrNotFound.
func (s *Store) Get(slug string) (Record, error) {
	r := Record{Slug: slug}
	var tags string
	err := s.db.QueryRow(`SELECT title, author, date, excerpt, tags, content_path, reading_time FROM posts WHERE slug = ?`, slug).
		Scan(&r.Title, &r.Author, &r.Date, &r.Excerpt, &tags, &r.ContentPath, &r.ReadingTime)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	r.Tags = ParseTags(tags)
	return r, nil
}

// Catalog builds a catalog from the stored records.
func (s *Store) Catalog() (*Catalog, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}
	return NewCatalog(records)
}

// JoinTags encodes tags as a comma-delimited string with leading and trailing
// commas (",go,web,") so single tags can be matched with instr.
func JoinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "," + strings.Join(tags, ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
