// Package database manages the PostgreSQL pool behind the catalog and runs
// schema migrations with goose. SQL files are embedded so deployments ship
// a single binary.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations
var embedMigrations embed.FS

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// Pool tunes the connection pool. Catalog reads are short and bursty, so
// the defaults stay small; MaxConns caps both open and idle connections.
type Pool struct {
	MaxConns        int
	ConnMaxLifetime time.Duration
}

// DefaultPool is used for zero fields passed to Connect.
var DefaultPool = Pool{
	MaxConns:        10,
	ConnMaxLifetime: 30 * time.Minute,
}

// Connect opens a PostgreSQL pool for the given DSN, applies the pool
// limits, and verifies connectivity before returning.
func Connect(dsn string, pool Pool) (*sql.DB, error) {
	if pool.MaxConns <= 0 {
		pool.MaxConns = DefaultPool.MaxConns
	}
	if pool.ConnMaxLifetime <= 0 {
		pool.ConnMaxLifetime = DefaultPool.ConnMaxLifetime
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(pool.MaxConns)
	db.SetMaxIdleConns(pool.MaxConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	slog.Info("database connected", "max_conns", pool.MaxConns)
	return db, nil
}

// Migrate applies all pending migrations from the embedded SQL files.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	slog.Info("database migrations applied")
	return nil
}
