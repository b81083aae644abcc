// Package migrations embeds the versioned schema migrations for both
// storage backends.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// SQLite returns the sqlite migrations as a flat filesystem.
func SQLite() (fs.FS, error) {
	return fs.Sub(files, "sqlite")
}

// Postgres returns the postgres migrations as a flat filesystem.
func Postgres() (fs.FS, error) {
	return fs.Sub(files, "postgres")
}
