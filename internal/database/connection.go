package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a keyed record does not exist
var ErrNotFound = errors.New("record not found")

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config describes how to reach the record store
type Config struct {
	Driver string // sqlite3 or postgres
	DSN    string // file path (":memory:" allowed) or postgres URL
}

// Connect opens the record store and creates the schema if needed
func Connect(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverSQLite:
		if cfg.DSN != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers, and every connection to
		// ":memory:" would see its own empty database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

var schema = []struct {
	name string
	ddl  string
}{
	{"cards", `
		CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			front_fidel TEXT,
			front_roman TEXT NOT NULL,
			fidel_confidence TEXT NOT NULL DEFAULT 'ok',
			back TEXT NOT NULL,
			audio_key TEXT,
			module_id TEXT NOT NULL
		)`},
	{"cards module index", `CREATE INDEX IF NOT EXISTS idx_cards_module_id ON cards (module_id)`},
	{"srs_state", `
		CREATE TABLE IF NOT EXISTS srs_state (
			card_id TEXT PRIMARY KEY REFERENCES cards(id) ON DELETE CASCADE,
			interval_days DOUBLE PRECISION NOT NULL DEFAULT 1,
			ease_factor DOUBLE PRECISION NOT NULL DEFAULT 2.5,
			due_date TEXT NOT NULL,
			reps INTEGER NOT NULL DEFAULT 0
		)`},
	{"srs_state due index", `CREATE INDEX IF NOT EXISTS idx_srs_state_due_date ON srs_state (due_date)`},
	{"progress", `
		CREATE TABLE IF NOT EXISTS progress (
			module_id TEXT PRIMARY KEY,
			status TEXT NOT NULL DEFAULT 'locked',
			score INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT
		)`},
	{"user_prefs", `
		CREATE TABLE IF NOT EXISTS user_prefs (
			id TEXT PRIMARY KEY,
			streak_count INTEGER NOT NULL DEFAULT 0,
			last_study_date TEXT,
			xp_total INTEGER NOT NULL DEFAULT 0
		)`},
	{"custom_vocab", `
		CREATE TABLE IF NOT EXISTS custom_vocab (
			id TEXT PRIMARY KEY,
			amharic TEXT NOT NULL,
			english TEXT NOT NULL,
			transliteration TEXT NOT NULL DEFAULT '',
			theme TEXT NOT NULL DEFAULT ''
		)`},
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(ctx context.Context, db *sqlx.DB) error {
	for _, s := range schema {
		if _, err := db.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("failed to create %s: %w", s.name, err)
		}
	}
	return nil
}
