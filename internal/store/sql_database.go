package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/migrations"
)

const (
	retryAttempts = 3
	retryBaseWait = 50 * time.Millisecond
)

// ErrorClassificator decides whether a failed statement is worth repeating.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB wraps a *sql.DB with the error classifier of its driver.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	dialect            migrations.Dialect
}

// Migrate applies pending schema migrations for the dialect the connection
// was opened with.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB, db.dialect)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		db.logger.Info().Str("dialect", string(db.dialect)).Ints64("versions", applied).Msg("schema migrated")
	}
	return nil
}

// withRetry runs fn and repeats it with exponential backoff while the
// classifier reports the failure as transient. Without a classifier fn is
// run exactly once.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	if db.errorClassificator == nil {
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBaseWait))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if db.errorClassificator.Classify(err) == Retryable {
			logger.FromContext(ctx).Warn().Err(err).Msg("retrying database operation")
			return retry.RetryableError(err)
		}
		return err
	})
}
