package store

import (
	"database/sql"
	"math"
	"path/filepath"
	"testing"

	"nickandperla.net/goryl/internal/value"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	// Test Put and Get
	err := s.Put("test", value.String("hello"))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := s.Get("test")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || !value.Equal(got, value.String("hello")) {
		t.Errorf("expected 'hello', got %s", got)
	}

	// Test Delete
	err = s.Delete("test")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, err = s.Get("test")
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if ok {
		t.Errorf("expected missing binding after delete")
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goryl-test.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}

	values := map[string]value.Value{
		"s":    value.String("world"),
		"n":    value.Number(0.1),
		"big":  value.Number(1e300),
		"inf":  value.Number(math.Inf(-1)),
		"b":    value.Bool(true),
		"none": value.None,
	}
	for name, v := range values {
		if err := s.Put(name, v); err != nil {
			t.Fatalf("Put %s failed: %v", name, err)
		}
	}

	// Close and reopen to verify persistence
	s.Close()

	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s2.Close()

	for name, want := range values {
		got, ok, err := s2.Get(name)
		if err != nil {
			t.Fatalf("Get %s after reopen failed: %v", name, err)
		}
		if !ok || got.Kind() != want.Kind() || got.String() != want.String() {
			t.Errorf("%s: expected %s, got %s", name, want, got)
		}
	}

	names, err := s2.Names()
	if err != nil {
		t.Fatalf("Names failed: %v", err)
	}
	if len(names) != len(values) || names[0] != "b" {
		t.Errorf("expected sorted names starting with 'b', got %v", names)
	}
}

func TestSQLiteOverwriteAndDelete(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "goryl-test.db"))
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	defer s.Close()

	s.Put("x", value.Number(1))
	s.Put("x", value.String("one"))
	got, _, _ := s.Get("x")
	if str, ok := got.Str(); !ok || str != "one" {
		t.Errorf("expected last write to win, got %s", got)
	}

	if err := s.Delete("x"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := s.Get("x"); ok {
		t.Errorf("expected x to be deleted")
	}
}

func TestSQLiteSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goryl-test.db")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	v, err := s.getMetadata("schema_version")
	if err != nil || v != SchemaVersion {
		t.Fatalf("expected schema version %s, got '%s' (%v)", SchemaVersion, v, err)
	}
	s.Close()

	// Simulate a database written by a newer release
	db, err := sql.Open(driverName, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec(`UPDATE metadata SET value = '99' WHERE key = 'schema_version'`); err != nil {
		t.Fatalf("update: %v", err)
	}
	db.Close()

	if _, err := NewSQLite(path); err == nil {
		t.Errorf("expected unsupported schema version error")
	}
}

func TestDecodeRejectsBadRows(t *testing.T) {
	if _, err := Decode("number", "abc"); err == nil {
		t.Errorf("expected error for bad number")
	}
	if _, err := Decode("bool", "maybe"); err == nil {
		t.Errorf("expected error for bad bool")
	}
	if _, err := Decode("table", ""); err == nil {
		t.Errorf("expected error for unknown kind")
	}
}
