package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// dbPool is the singleton database connection pool
	dbPool *sql.DB
	// dbOnce ensures the pool is created only once
	dbOnce sync.Once
	// dbErr stores any error from pool creation
	dbErr error
)

const schema = `
CREATE TABLE IF NOT EXISTS shorts (
	id         TEXT PRIMARY KEY,
	quote_id   TEXT NOT NULL,
	author     TEXT NOT NULL DEFAULT '',
	category   TEXT NOT NULL DEFAULT '',
	path       TEXT NOT NULL,
	mime_type  TEXT NOT NULL DEFAULT 'image/png',
	bytes      INTEGER NOT NULL DEFAULT 0,
	model      TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_shorts_quote ON shorts(quote_id);
CREATE INDEX IF NOT EXISTS idx_shorts_created ON shorts(created_at);`

// GetDB returns the singleton database connection pool.
// It creates the pool and the schema on first call.
func GetDB() (*sql.DB, error) {
	dbOnce.Do(func() {
		dbPath, err := getDBPath()
		if err != nil {
			dbErr = fmt.Errorf("failed to get database path: %w", err)
			return
		}

		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			dbErr = fmt.Errorf("failed to create database directory: %w", err)
			return
		}

		pool, err := sql.Open("sqlite3", dbPath)
		if err != nil {
			dbErr = fmt.Errorf("failed to open database: %w", err)
			return
		}

		// SQLite is local, connections don't need to expire
		pool.SetMaxOpenConns(4)
		pool.SetMaxIdleConns(2)
		pool.SetConnMaxLifetime(0)

		for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
			if _, err := pool.Exec(pragma); err != nil {
				dbErr = fmt.Errorf("failed to apply %q: %w", pragma, err)
				pool.Close()
				return
			}
		}

		if _, err := pool.Exec(schema); err != nil {
			dbErr = fmt.Errorf("failed to create schema: %w", err)
			pool.Close()
			return
		}

		dbPool = pool
	})

	if dbErr != nil {
		return nil, dbErr
	}

	return dbPool, nil
}

// CloseDB closes the singleton pool so a new one can be created.
// Call on shutdown, or in tests after switching the path.
func CloseDB() error {
	var err error
	if dbPool != nil {
		err = dbPool.Close()
	}
	dbPool = nil
	dbErr = nil
	dbOnce = sync.Once{}
	return err
}

// dbPathFunc is a variable holding the function to get DB path (for testing)
var dbPathFunc = getDefaultDBPath

// getDefaultDBPath returns the default path to the SQLite database
func getDefaultDBPath() (string, error) {
	// Use XDG_DATA_HOME for database storage (XDG Base Directory spec)
	xdgDataHome := os.Getenv("XDG_DATA_HOME")
	if xdgDataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		xdgDataHome = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(xdgDataHome, "psyquotes", "psyquotes.db"), nil
}

// getDBPath returns the path to the SQLite database
func getDBPath() (string, error) {
	return dbPathFunc()
}

// UsePath points the store at an explicit database file, closing any open pool
func UsePath(path string) error {
	err := CloseDB()
	dbPathFunc = func() (string, error) { return path, nil }
	return err
}
