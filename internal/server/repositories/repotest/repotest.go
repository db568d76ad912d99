// Package repotest provides a migrated SQLite database for repository and
// service tests.
package repotest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/server/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// OpenSQLite creates a fresh database file under t.TempDir with every
// SQLite migration applied. It is closed on test cleanup.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "notes.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.SQLite)
	require.NoError(t, err)
	_, err = provider.Up(context.Background())
	require.NoError(t, err)

	return db
}
