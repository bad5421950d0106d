package database

import (
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/mnmarketlink/platform/internal/config"
)

// BuildDSN converts database settings into a go-sql-driver DSN. parseTime is
// required so DATETIME columns scan into time.Time.
func BuildDSN(db config.DatabaseConfig) string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", db.Host, db.Port)
	cfg.User = db.User
	cfg.Passwd = db.Password
	cfg.DBName = db.Name
	cfg.ParseTime = true
	cfg.MultiStatements = false
	return cfg.FormatDSN()
}
