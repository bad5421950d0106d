package database

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.up.sql
var migrations embed.FS

// MigrationsFS returns the schema migration files compiled into the binary.
func MigrationsFS() fs.FS {
	return migrations
}

// MigrationsPath is the directory inside MigrationsFS holding the .up.sql files.
const MigrationsPath = "migrations"
