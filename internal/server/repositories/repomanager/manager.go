// Package repomanager vends repository implementations for the configured
// storage backend and applies its goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// RepositoryManager binds repositories to a DBTX, so the same manager serves
// plain connections and transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
}

// PoolOptions bounds the database/sql connection pool.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Backend identifies a storage implementation.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// ParseDSN picks the backend for dsn and returns the driver name and the
// data source string to hand to sql.Open.
//
//	postgres://... postgresql://...   -> pgx
//	sqlite://path, file:..., :memory: -> modernc sqlite
func ParseDSN(dsn string) (Backend, string, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres, "pgx", dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return BackendSQLite, "sqlite", sqliteDataSource("file:" + strings.TrimPrefix(dsn, "sqlite://")), nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return BackendSQLite, "sqlite", sqliteDataSource(dsn), nil
	case dsn == "":
		return "", "", "", fmt.Errorf("database dsn is empty")
	default:
		return "", "", "", fmt.Errorf("unsupported database dsn scheme")
	}
}

// Open connects to the database named by dsn, applies the pool options,
// checks connectivity and returns the matching manager. Migrations are not
// run.
func Open(ctx context.Context, dsn string, pool PoolOptions) (*sql.DB, RepositoryManager, error) {
	backend, driver, source, err := ParseDSN(dsn)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	if strings.Contains(source, ":memory:") {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	var m RepositoryManager
	switch backend {
	case BackendPostgres:
		m, err = NewPostgresRepositoryManager(db)
	default:
		m, err = NewSQLiteRepositoryManager(db)
	}
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, m, nil
}

func sqliteDataSource(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// gooseUp is a seam for testing migrations.
var gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}
