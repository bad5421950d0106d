//go:build integration

package mysql_test

import (
	"context"
	"io"
	"os"
	"testing"

	"log/slog"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/mnmarketlink/platform/internal/database"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping mysql integration tests")
	}

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("ping db: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	migrator := database.NewSQLMigrator(db, database.MigrationsFS(), database.MigrationsPath, logger)
	if err := migrator.Up(context.Background()); err != nil {
		db.Close()
		t.Fatalf("run migrations: %v", err)
	}

	cleanupTables(t, db)

	return db
}

// cleanupTables deletes child tables before their parents to satisfy
// foreign key constraints.
func cleanupTables(t *testing.T, db *sqlx.DB) {
	t.Helper()
	stmts := []string{
		"DELETE FROM order_items",
		"DELETE FROM orders",
		"DELETE FROM vendor_markets",
		"DELETE FROM products",
		"DELETE FROM vendors",
		"DELETE FROM customers",
		"DELETE FROM markets",
		"DELETE FROM users",
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("cleanup %s: %v", stmt, err)
		}
	}
}
