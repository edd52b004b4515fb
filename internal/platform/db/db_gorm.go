// Package db opens the PostgreSQL connection and applies schema migrations.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// Options controls connection setup.
type Options struct {
	DSN            string
	PoolSize       int
	ConnectTimeout time.Duration
	RunMigrations  bool
}

// PostgresOpener opens a PostgreSQL connection with driver errors translated
// into gorm errors (gorm.ErrDuplicatedKey and friends).
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects to PostgreSQL, sizes the pool and optionally runs migrations.
func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	gdb, err := ConnectWithRetry(opts.DSN, opts.ConnectTimeout, PostgresOpener)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if opts.PoolSize > 0 {
		sqlDB.SetMaxOpenConns(opts.PoolSize)
		sqlDB.SetMaxIdleConns(opts.PoolSize)
	}

	if opts.RunMigrations {
		if err := Migrate(ctx, sqlDB, "postgres"); err != nil {
			return nil, err
		}
	}
	return gdb, nil
}

// Migrate applies every pending migration. dialect is a goose dialect name
// ("postgres" in production, "sqlite3" in tests).
func Migrate(ctx context.Context, sqlDB *sql.DB, dialect string) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	slog.Info("database migrations applied")
	return nil
}
