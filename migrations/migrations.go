// Package migrations holds the SQL schema of the companion data service,
// one goose migration set per dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/codegym/product-catalog/models"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// Up applies every pending migration for dialect to db and returns the
// versions that were applied.
func Up(ctx context.Context, db *sql.DB, dialect string) ([]int64, error) {
	var (
		gd  goose.Dialect
		dir string
	)
	switch dialect {
	case models.DialectSQLite:
		gd, dir = goose.DialectSQLite3, "sqlite"
	case models.DialectPostgres:
		gd, dir = goose.DialectPostgres, "postgres"
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}

	fsys, err := fs.Sub(files, dir)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(gd, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}

// Run opens databaseURL with its database/sql driver (lib/pq for postgres,
// go-sqlite3 for sqlite), applies pending migrations and closes the
// connection.
func Run(ctx context.Context, databaseURL string) ([]int64, error) {
	dialect, dsn, err := models.ParseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	defer func() { _ = db.Close() }()
	return Up(ctx, db, dialect)
}
