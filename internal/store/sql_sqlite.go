package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/migrations"
)

// sqliteParams is appended to every client DSN.
const sqliteParams = "_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL"

// NewConnectSQLite opens the client cache, creating the file and its
// directory with owner-only permissions on first run.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	path, _, _ := strings.Cut(cfg.DSN, "?")
	if err := ensureFile(path); err != nil {
		log.Err(err).Str("path", path).Msg("cannot prepare local database file")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", withSQLiteParams(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	// one writer: the scheduler goroutine and the UI share the handle
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		log.Err(err).Str("path", path).Msg("local database does not answer")
		return nil, fmt.Errorf("ping local database: %w", err)
	}
	log.Debug().Str("path", path).Msg("local database opened")

	return &DB{
		DB:                 conn,
		errorClassificator: SQLiteErrorClassifier{},
		logger:             log,
		dialect:            migrations.SQLite,
	}, nil
}

func withSQLiteParams(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqliteParams
	}
	return dsn + "?" + sqliteParams
}

// ensureFile creates path unless it exists. The directory and the file
// are created owner-only.
func ensureFile(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat database file: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("error creating DB directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("error creating DB file: %w", err)
	}
	return f.Close()
}

// SQLiteErrorClassifier retries statements that lost the file lock to
// another connection.
type SQLiteErrorClassifier struct{}

func (SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return NonRetryable
	}
	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	}
	return NonRetryable
}
