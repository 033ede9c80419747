package store

import (
	"database/sql"
	"fmt"
	"sync"

	"nickandperla.net/goryl/internal/value"
)

// Current schema version
const SchemaVersion = "1"

// SQLite is a SQLite-backed store.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite creates a new SQLite store at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	// Create tables if not exists
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS bindings (
			name TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create tables in %s: %w", path, err)
	}

	s := &SQLite{db: db}

	// Check/set schema version
	version, err := s.getMetadata("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	switch version {
	case "":
		if err := s.setMetadata("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// Get retrieves a value by name.
func (s *SQLite) Get(name string) (value.Value, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kind, text string
	err := s.db.QueryRow("SELECT kind, value FROM bindings WHERE name = ?", name).Scan(&kind, &text)
	if err == sql.ErrNoRows {
		return value.None, false, nil
	}
	if err != nil {
		return value.None, false, err
	}

	v, err := Decode(kind, text)
	if err != nil {
		return value.None, false, err
	}
	return v, true, nil
}

// Put stores a value by name.
func (s *SQLite) Put(name string, v value.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind, text := Encode(v)
	_, err := s.db.Exec(`
		INSERT INTO bindings (name, kind, value) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET kind = excluded.kind, value = excluded.value
	`, name, kind, text)
	return err
}

// Delete removes a value by name.
func (s *SQLite) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM bindings WHERE name = ?", name)
	return err
}

// Names lists stored names in ascending order.
func (s *SQLite) Names() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT name FROM bindings ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// getMetadata reads a metadata value. Callers hold s.mu or own s exclusively.
func (s *SQLite) getMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// setMetadata writes a metadata value. Callers hold s.mu or own s exclusively.
func (s *SQLite) setMetadata(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
