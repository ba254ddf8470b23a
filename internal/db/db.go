package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// DriverName is go-sqlite3 with worklog's SQL functions registered on every
// connection. worklog_lower folds full Unicode, unlike the built-in LOWER,
// which only folds ASCII.
const DriverName = "sqlite3_worklog"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("worklog_lower", strings.ToLower, true)
		},
	})
}

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DSN returns the go-sqlite3 data source name for path. Foreign keys are a
// per-connection setting in SQLite, so they are enabled in the DSN rather
// than with a one-off PRAGMA.
func DSN(path string) string {
	if path == MemoryPath {
		return "file::memory:?_foreign_keys=on&_busy_timeout=5000"
	}
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
}

// Open opens the SQLite database at path, creating its directory if needed.
// The schema is not touched; call InitSchema for that.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	database, err := sql.Open(DriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to :memory: is a separate database.
	if path == MemoryPath {
		database.SetMaxOpenConns(1)
	}

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}
