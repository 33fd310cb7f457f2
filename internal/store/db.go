package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS annual_temperatures (
	year INTEGER PRIMARY KEY,
	anomaly REAL NOT NULL,
	moving_avg_5yr REAL
);

CREATE TABLE IF NOT EXISTS decadal_averages (
	decade TEXT PRIMARY KEY,
	decade_start INTEGER NOT NULL UNIQUE,
	average REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS temperature_trends (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	start_year INTEGER NOT NULL,
	end_year INTEGER NOT NULL,
	trend_per_decade REAL NOT NULL,
	warming_since_preindustrial REAL,
	pre_industrial_avg REAL,
	early_20th_century_avg REAL,
	late_20th_century_avg REAL,
	twentyfirst_century_avg REAL,
	warmest_year INTEGER NOT NULL,
	warmest_year_anomaly REAL NOT NULL,
	coldest_year INTEGER NOT NULL,
	coldest_year_anomaly REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS load_runs (
	run_id TEXT PRIMARY KEY,
	generated_at DATETIME NOT NULL,
	loaded_at DATETIME NOT NULL
);
`

// Config holds store configuration options
type Config struct {
	// Path is the SQLite database file
	Path string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Clock stamps load records; nil means the real clock
	Clock clockwork.Clock
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig(path string) Config {
	return Config{
		Path:            path,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// Store provides access to the climate tables. It is safe for concurrent use.
type Store struct {
	db    *sql.DB
	clock clockwork.Clock
}

// Open connects to the database, verifies the connection and creates the
// schema if it does not exist yet
func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.Path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{db: db, clock: clock}, nil
}

// Close closes the underlying connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// CheckReadiness pings the database
func (s *Store) CheckReadiness(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}
