package database

import (
	"strings"
	"testing"

	"github.com/mnmarketlink/platform/internal/config"
)

func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN(config.DatabaseConfig{
		Host:     "db.internal",
		Port:     3307,
		User:     "marketlink",
		Password: "hunter2",
		Name:     "MNMarketLink",
	})

	if !strings.HasPrefix(dsn, "marketlink:hunter2@tcp(db.internal:3307)/MNMarketLink") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn missing parseTime: %s", dsn)
	}
}

func TestBuildDSNWithoutPassword(t *testing.T) {
	dsn := BuildDSN(config.DatabaseConfig{
		Host: "127.0.0.1",
		Port: 3306,
		User: "root",
		Name: "MNMarketLink",
	})

	if !strings.HasPrefix(dsn, "root@tcp(127.0.0.1:3306)/MNMarketLink") {
		t.Fatalf("unexpected dsn: %s", dsn)
	}
}
