package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"xscan/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite. Artifacts are kept as JSON blobs
// keyed by normalized component ID; the schema carries no structure beyond
// that because the cache is a snapshot, not a query surface.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the cache database and applies migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS artifacts (
		id TEXT PRIMARY KEY,
		data TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the full artifact snapshot.
func (s *SQLiteStore) Load() (map[string]model.Artifact, error) {
	rows, err := s.db.Query(`SELECT id, data FROM artifacts`)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}
	defer rows.Close()

	artifacts := make(map[string]model.Artifact)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var artifact model.Artifact
		if err := json.Unmarshal([]byte(data), &artifact); err != nil {
			return nil, fmt.Errorf("corrupt cache entry %q: %w", id, err)
		}
		artifacts[id] = artifact
	}
	return artifacts, rows.Err()
}

// Write replaces the stored snapshot with the given one, atomically.
func (s *SQLiteStore) Write(artifacts map[string]model.Artifact) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM artifacts`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO artifacts (id, data) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, artifact := range artifacts {
		data, err := json.Marshal(artifact)
		if err != nil {
			return fmt.Errorf("failed to encode artifact %q: %w", id, err)
		}
		if _, err := stmt.Exec(id, string(data)); err != nil {
			return err
		}
	}

	return tx.Commit()
}
