// Package migrations embeds the goose schema migrations of both databases:
// the server's PostgreSQL store and the client's SQLite cache.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Dialect names the database a migration set is written for.
type Dialect string

const (
	Postgres Dialect = "pgx"
	SQLite   Dialect = "sqlite3"
)

var dialects = map[Dialect]struct {
	dir   string
	goose goose.Dialect
}{
	Postgres: {dir: "postgres", goose: goose.DialectPostgres},
	SQLite:   {dir: "sqlite", goose: goose.DialectSQLite3},
}

// Migrate applies every pending migration of dialect to db and returns the
// versions it applied. A second run applies nothing.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) ([]int64, error) {
	if db == nil {
		return nil, errors.New("migration error: db is nil")
	}

	d, ok := dialects[dialect]
	if !ok {
		return nil, fmt.Errorf("migration error: unknown migration dialect %q", string(dialect))
	}

	fsys, err := fs.Sub(embedMigrations, d.dir)
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	provider, err := goose.NewProvider(d.goose, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}
