// Package db provides the in-memory SQLite database that backs the
// browser session store. Nothing is written to disk: state ends with the
// process.
package db

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB with academy-specific helpers.
type DB struct {
	*sql.DB
	mu sync.Mutex
}

// OpenMemory creates an in-memory SQLite database with the schema applied.
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every new connection to :memory: is a separate, empty database.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// Lock serializes read-modify-write sequences across callers. Callers must
// Unlock when done.
func (d *DB) Lock() { d.mu.Lock() }

// Unlock releases the lock taken by Lock.
func (d *DB) Unlock() { d.mu.Unlock() }

// migrate runs all schema migrations.
func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS ui_sessions (
    id TEXT PRIMARY KEY,
    theme TEXT NOT NULL DEFAULT 'dark' CHECK(theme IN ('dark','light')),
    active_panel TEXT NOT NULL DEFAULT 'explorer' CHECK(active_panel IN ('explorer','none')),
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ui_sessions_updated ON ui_sessions(updated_at);
`
