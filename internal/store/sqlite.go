// Package store provides SQLite-backed persistence for the NCP engine.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// schemaV1 defines the initial database schema.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS clients (
	client_id       TEXT PRIMARY KEY,
	name            TEXT NOT NULL DEFAULT '',
	state           TEXT NOT NULL DEFAULT 'new_client',
	state_version   INTEGER NOT NULL DEFAULT 1,
	created_at_unix INTEGER NOT NULL DEFAULT 0,
	updated_at_unix INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS state_transitions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	client_id  TEXT NOT NULL,
	from_state TEXT NOT NULL,
	to_state   TEXT NOT NULL,
	at_unix    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transitions_client ON state_transitions(client_id, id);

CREATE TABLE IF NOT EXISTS assessments (
	assessment_id   TEXT PRIMARY KEY,
	client_id       TEXT NOT NULL,
	created_at_unix INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_assessments_client ON assessments(client_id, created_at_unix);

CREATE TABLE IF NOT EXISTS stage_contexts (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	assessment_id TEXT NOT NULL,
	stage         TEXT NOT NULL,
	version       INTEGER NOT NULL DEFAULT 1,
	context_json  TEXT NOT NULL DEFAULT '{}',
	created_at    INTEGER NOT NULL,
	UNIQUE(assessment_id, stage, version)
);

CREATE TABLE IF NOT EXISTS meal_plans (
	plan_id       TEXT PRIMARY KEY,
	assessment_id TEXT NOT NULL,
	client_id     TEXT NOT NULL,
	version       INTEGER NOT NULL DEFAULT 1,
	plan_json     TEXT NOT NULL DEFAULT '{}',
	created_at    INTEGER NOT NULL,
	UNIQUE(client_id, version)
);
CREATE INDEX IF NOT EXISTS idx_plans_client ON meal_plans(client_id, version);
`

// NewDB opens a SQLite database at the given path with recommended pragmas
// and runs the V1 schema migration.
func NewDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Limit connections to 1 for SQLite (WAL allows concurrent reads but single writer).
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(), schemaV1)
	return err
}
