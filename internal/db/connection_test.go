package db

import (
	"path/filepath"
	"testing"
)

// useTempDB points the singleton at a fresh database for the test
func useTempDB(t *testing.T) {
	t.Helper()
	original := dbPathFunc
	if err := UsePath(filepath.Join(t.TempDir(), "nested", "test.db")); err != nil {
		t.Fatalf("Failed to switch database: %v", err)
	}
	t.Cleanup(func() {
		CloseDB()
		dbPathFunc = original
	})
}

func TestConnectionPool(t *testing.T) {
	useTempDB(t)

	db1, err := GetDB()
	if err != nil {
		t.Fatalf("Failed to get first DB connection: %v", err)
	}
	if db1 == nil {
		t.Fatal("First DB connection is nil")
	}

	db2, err := GetDB()
	if err != nil {
		t.Fatalf("Failed to get second DB connection: %v", err)
	}

	// Verify it's the same pool instance (singleton)
	if db1 != db2 {
		t.Error("GetDB() returned different instances - should be singleton")
	}

	var result int
	if err := db1.QueryRow("SELECT COUNT(*) FROM shorts").Scan(&result); err != nil {
		t.Fatalf("Expected schema to exist: %v", err)
	}
	if result != 0 {
		t.Errorf("Expected empty shorts table, got %d rows", result)
	}
}

func TestDefaultDBPathHonoursXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	path, err := getDefaultDBPath()
	if err != nil {
		t.Fatalf("getDefaultDBPath failed: %v", err)
	}
	if path != filepath.Join("/tmp/xdg-data", "psyquotes", "psyquotes.db") {
		t.Errorf("Unexpected path %s", path)
	}
}
