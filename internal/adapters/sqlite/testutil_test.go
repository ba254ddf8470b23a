// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the single point where the database schema is loaded for tests.
// All setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test files;
// use setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/example/worklog/internal/db"
)

// baseTime anchors every seeded timestamp.
var baseTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open(db.DriverName, db.DSN(db.MemoryPath))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Each connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedUser inserts a test user and returns its ID.
func seedUser(t *testing.T, db *sql.DB, id, username string) string {
	t.Helper()
	if id == "" {
		id = "user-001"
	}
	if username == "" {
		username = "alice"
	}
	ts := baseTime.Format("2006-01-02T15:04:05.000000Z")
	_, err := db.Exec(
		"INSERT INTO users (id, email, username, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, 'x', 1, ?, ?)",
		id, fmt.Sprintf("%s@example.com", username), username, ts, ts,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}
