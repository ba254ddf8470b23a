package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// SchemaSQL is the complete schema for fresh installs.
// It reflects the state after all migrations.
//
// This is the single source of truth for the database schema. Tests build
// their databases from GetSchemaSQL() instead of hardcoding CREATE TABLE
// statements, so a repository that references a missing column fails
// immediately with "no such column".
//
// When adding columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//
// Timestamps are stored as fixed-width UTC text (see the sqlite adapter) so
// that string comparison matches chronological order.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	full_name TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL CHECK(length(title) BETWEEN 1 AND 255),
	description TEXT,
	status TEXT NOT NULL CHECK(status IN ('todo', 'doing', 'done')) DEFAULT 'todo',
	priority TEXT NOT NULL CHECK(priority IN ('high', 'medium', 'low')) DEFAULT 'medium',
	due_date TEXT,
	completed_at TEXT,
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	CHECK((status = 'done') = (completed_at IS NOT NULL)),
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_tasks_user_status ON tasks(user_id, status);
CREATE INDEX IF NOT EXISTS idx_tasks_user_due ON tasks(user_id, due_date);

CREATE TABLE IF NOT EXISTS daily_notes (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	content TEXT,
	mood TEXT CHECK(mood IS NULL OR mood IN ('great', 'good', 'okay', 'bad')),
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE(user_id, date),
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL CHECK(length(name) BETWEEN 1 AND 100),
	description TEXT,
	color TEXT NOT NULL DEFAULT '#6366f1',
	archived INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id, archived);
`

// InitSchema brings the database up to date. A fresh database gets SchemaSQL
// directly with every migration marked as applied; an existing one runs any
// pending migrations.
func InitSchema(database *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := ensureVersionTable(database); err != nil {
		return err
	}

	var userTables int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('users', 'tasks')").Scan(&userTables)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	if userTables == 0 {
		// Fresh install
		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin schema transaction: %w", err)
		}
		if _, err := tx.Exec(SchemaSQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create schema: %w", err)
		}
		for _, m := range migrations {
			if _, err := tx.Exec("INSERT OR IGNORE INTO schema_version (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit schema: %w", err)
		}
		logger.Info("database schema created", "version", LatestVersion())
		return nil
	}

	return RunMigrations(database, logger)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
