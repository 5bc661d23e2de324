package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Init initializes the SQLite database at baseDir/linkboard.db.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.linkboard.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	dbPath := filepath.Join(baseDir, "linkboard.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(database); err != nil {
		database.Close()
		return nil, err
	}

	if err := migrate(database); err != nil {
		database.Close()
		return nil, err
	}

	// The snapshots table holds full page bodies; keep the file private.
	_ = os.Chmod(dbPath, 0600)

	return database, nil
}

// migrate applies schema migrations based on user_version.
func migrate(database *sql.DB) error {
	version, err := GetUserVersion(database)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS containers_cache (
		  page_id  INTEGER NOT NULL,
		  key      TEXT NOT NULL,
		  name     TEXT NOT NULL,
		  columns  INTEGER NOT NULL,
		  position INTEGER NOT NULL,
		  PRIMARY KEY (page_id, key)
		);

		CREATE TABLE IF NOT EXISTS categories_cache (
		  page_id       INTEGER NOT NULL,
		  key           TEXT NOT NULL,
		  name          TEXT NOT NULL,
		  description   TEXT NOT NULL,
		  layout        TEXT NOT NULL,
		  accent        TEXT NOT NULL,
		  container_key TEXT NOT NULL,
		  position      INTEGER NOT NULL,
		  PRIMARY KEY (page_id, key)
		);

		CREATE TABLE IF NOT EXISTS page_state (
		  page_id      INTEGER PRIMARY KEY,
		  updated_at   TEXT NOT NULL,
		  refreshed_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS snapshots (
		  id        TEXT PRIMARY KEY,
		  page_id   INTEGER NOT NULL,
		  operation TEXT NOT NULL,
		  content   TEXT NOT NULL,
		  taken_at  INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_page_taken
		ON snapshots(page_id, taken_at DESC);
		`
		if _, err := database.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(database, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(database *sql.DB) error {
	var journalMode string
	if err := database.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(database *sql.DB) (int, error) {
	var version int
	if err := database.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(database *sql.DB, version int) error {
	_, err := database.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
