package db

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"deckforge/logger"
)

// Execer is the part of a pool needed to run DDL
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ConnString returns url, or a key/value connection string built from the
// DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME and DB_SSLMODE variables.
// It returns "" when neither is configured.
func ConnString(url string) string {
	if url != "" {
		return url
	}
	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return ""
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, os.Getenv("DB_PASSWORD"), dbname, sslmode)
}

// InitDB opens a connection pool and checks it with a ping. Non-positive
// limits keep the pgxpool defaults.
func InitDB(ctx context.Context, connStr string, maxConns, minConns int32, log *logger.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}
	if minConns > 0 {
		poolCfg.MinConns = minConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("✓ Database connection established successfully")
	return pool, nil
}

// CloseDB closes the pool if it is open
func CloseDB(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

// Schema creates the deck and export tables
const Schema = `
CREATE TABLE IF NOT EXISTS decks (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	theme_id    TEXT NOT NULL DEFAULT '',
	body        JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS exports (
	id               TEXT PRIMARY KEY,
	deck_id          TEXT NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
	format           TEXT NOT NULL,
	theme_id         TEXT NOT NULL DEFAULT '',
	bytes            INTEGER NOT NULL DEFAULT 0,
	degraded_slides  INTEGER NOT NULL DEFAULT 0,
	failed_assets    INTEGER NOT NULL DEFAULT 0,
	report           JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS exports_deck_id_idx ON exports (deck_id, created_at DESC);
`

// EnsureSchema creates missing tables
func EnsureSchema(ctx context.Context, q Execer) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
