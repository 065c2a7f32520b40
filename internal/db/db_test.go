package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	var count int
	if err := d.QueryRow("SELECT COUNT(*) FROM exchanges").Scan(&count); err != nil {
		t.Errorf("table exchanges: %v", err)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "exchanges.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	if d.Path() != path {
		t.Errorf("Path() = %q, want %q", d.Path(), path)
	}
}

func TestModeConstraint(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	_, err = d.Exec(`INSERT INTO exchanges (id, mode, prompt, reply) VALUES ('x', 'poetry', 'p', 'r')`)
	if err == nil {
		t.Error("expected CHECK constraint failure for unknown mode")
	}
}

func TestCreatedAtDefault(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	if _, err := d.Exec(`INSERT INTO exchanges (id, mode, prompt, reply) VALUES ('x', 'assistant', 'p', 'r')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var createdAt string
	if err := d.QueryRow(`SELECT created_at FROM exchanges WHERE id = 'x'`).Scan(&createdAt); err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(createdAt) != len("2006-01-02 15:04:05.000") {
		t.Errorf("unexpected created_at format %q", createdAt)
	}
}
