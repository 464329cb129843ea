// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store opens the shared SQLite database that backs the enhancement
// queue and classification analytics.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const (
	indexDir = "index"
	dbFile   = "scribe.db"
)

// Open creates dataDir/index/ if needed and opens the SQLite database inside
// it with WAL journaling and foreign keys enabled.
func Open(dataDir string) (*sql.DB, error) {
	dbDir := filepath.Join(dataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}
