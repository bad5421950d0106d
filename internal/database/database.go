package database

import (
	"context"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const defaultPingTimeout = 5 * time.Second

// Options configures the MySQL connection pool.
type Options struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	Logger          *slog.Logger
	PingTimeout     time.Duration
}

// DB wraps *sqlx.DB to centralize lifecycle management.
type DB struct {
	*sqlx.DB
	logger *slog.Logger
}

// Connect opens a pooled MySQL connection and verifies it with a bounded
// ping before returning.
func Connect(ctx context.Context, opts Options) (*DB, error) {
	if opts.DSN == "" {
		return nil, errors.New("database DSN is required")
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	pool, err := sqlx.Open("mysql", opts.DSN)
	if err != nil {
		return nil, err
	}
	opts.tunePool(pool)

	if err := pingWithTimeout(ctx, pool, opts.PingTimeout); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("database connected", "driver", "mysql")
	return &DB{DB: pool, logger: log}, nil
}

func (o Options) tunePool(pool *sqlx.DB) {
	if o.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		pool.SetMaxIdleConns(o.MaxIdleConns)
	}
	if o.ConnMaxLifetime > 0 {
		pool.SetConnMaxLifetime(o.ConnMaxLifetime)
	}
	if o.ConnMaxIdleTime > 0 {
		pool.SetConnMaxIdleTime(o.ConnMaxIdleTime)
	}
}

func pingWithTimeout(ctx context.Context, pool *sqlx.DB, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return pool.PingContext(pingCtx)
}

// Close releases database resources.
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

// RunMigrations applies pending schema migrations through the migrator.
// A nil migrator is allowed so callers can wire it conditionally.
func (db *DB) RunMigrations(ctx context.Context, migrator Migrator) error {
	if migrator == nil {
		db.logger.Info("no migrator configured; skipping migrations")
		return nil
	}

	db.logger.Info("running migrations")
	if err := migrator.Up(ctx); err != nil {
		return err
	}
	db.logger.Info("migrations completed")
	return nil
}
