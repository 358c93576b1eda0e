// Package store persists run history in a local SQLite database so the
// status command can show what the pipeline last did on this machine.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/y3pio/unicon/internal/log"
	"github.com/y3pio/unicon/internal/store/migrations"
)

// Store wraps the SQLite connection holding run history.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (creating if needed) the database at path and runs pending
// migrations.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Single-writer CLI usage; keep the file private
	if err := os.Chmod(path, 0o600); err != nil {
		log.Debug("store: chmod %s: %v", path, err)
	}

	if err = migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// NewWithDB wraps an existing connection. Used by tests with in-memory
// databases.
func NewWithDB(db *sql.DB) (*Store, error) {
	if err := migrations.Run(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
