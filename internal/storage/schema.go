package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// SchemaVersion is recorded in store_metadata when the schema is created.
const SchemaVersion = "1"

// CreateSchema creates all tables and indexes for the annotation store.
// Uses a transaction for atomicity and is safe to call on an existing database.
//
// Schema includes:
//   - scan_runs: one row per exported scan
//   - functions: one row per located function, ordered within its file
//   - annotations: one row per annotation, cascading from functions
//   - store_metadata: schema version bookkeeping
//
// Must be called with SQLite PRAGMA foreign_keys = ON.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	tables := []struct {
		name string
		ddl  string
	}{
		{"scan_runs", createScanRunsTable},
		{"functions", createFunctionsTable},
		{"annotations", createAnnotationsTable},
		{"store_metadata", createStoreMetadataTable},
	}

	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range allIndexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		"INSERT OR IGNORE INTO store_metadata (key, value, updated_at) VALUES ('schema_version', ?, ?)",
		SchemaVersion, now,
	); err != nil {
		return fmt.Errorf("failed to bootstrap store_metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}

	return nil
}

// GetSchemaVersion retrieves the schema version from store_metadata.
// Returns "0" if the table doesn't exist (new database).
func GetSchemaVersion(db *sql.DB) (string, error) {
	var tableExists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='store_metadata'").Scan(&tableExists)
	if err != nil {
		return "", fmt.Errorf("failed to check store_metadata existence: %w", err)
	}
	if tableExists == 0 {
		return "0", nil
	}

	var version string
	err = db.QueryRow("SELECT value FROM store_metadata WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("schema_version key not found in store_metadata")
	}
	if err != nil {
		return "", fmt.Errorf("failed to query schema version: %w", err)
	}
	return version, nil
}

// Table DDL constants

const createScanRunsTable = `
CREATE TABLE IF NOT EXISTS scan_runs (
    id TEXT PRIMARY KEY,                         -- UUID
    root TEXT NOT NULL,                          -- scanned directory
    started_at TEXT NOT NULL                     -- RFC3339 UTC
)`

const createFunctionsTable = `
CREATE TABLE IF NOT EXISTS functions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    file_path TEXT NOT NULL,
    language TEXT NOT NULL,
    name TEXT NOT NULL,
    line INTEGER NOT NULL,                       -- 1-based
    "column" INTEGER NOT NULL,                   -- 1-based, code points
    ordinal INTEGER NOT NULL,                    -- document order within the file
    FOREIGN KEY (run_id) REFERENCES scan_runs(id) ON DELETE CASCADE
)`

const createAnnotationsTable = `
CREATE TABLE IF NOT EXISTS annotations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    function_id INTEGER NOT NULL,
    tag TEXT NOT NULL,
    content TEXT NOT NULL,
    is_multi_line INTEGER NOT NULL DEFAULT 0,
    ordinal INTEGER NOT NULL,                    -- comment order within the function
    FOREIGN KEY (function_id) REFERENCES functions(id) ON DELETE CASCADE
)`

const createStoreMetadataTable = `
CREATE TABLE IF NOT EXISTS store_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

var allIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_functions_run_file ON functions(run_id, file_path, ordinal)",
	"CREATE INDEX IF NOT EXISTS idx_functions_name ON functions(name)",
	"CREATE INDEX IF NOT EXISTS idx_annotations_function ON annotations(function_id, ordinal)",
	"CREATE INDEX IF NOT EXISTS idx_annotations_tag ON annotations(tag)",
}
