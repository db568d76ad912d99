// Package migrations embeds the goose schema migrations of both storage
// backends.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// Postgres holds the PostgreSQL migrations, including the stored procedures
// the PostgreSQL repositories call.
var Postgres = mustSub(postgresFS, "postgres")

// SQLite holds the SQLite migrations.
var SQLite = mustSub(sqliteFS, "sqlite")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
