package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// InitDB opens/creates the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite tolerates a single writer best.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const schemaRoastRuns = `
CREATE TABLE IF NOT EXISTS roast_runs (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    label TEXT,
    kp REAL NOT NULL,
    ki REAL NOT NULL,
    kd REAL NOT NULL,
    params TEXT NOT NULL,
    summary TEXT NOT NULL
);
`

const schemaRoastEvents = `
CREATE TABLE IF NOT EXISTS roast_events (
    id TEXT PRIMARY KEY,
    run_id TEXT NOT NULL,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    at_minute REAL NOT NULL,
    message TEXT NOT NULL
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// On panic, roll back rather than leaving an open transaction.
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaRoastRuns,
		schemaRoastEvents,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
