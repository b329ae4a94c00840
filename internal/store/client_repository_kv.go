package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
)

type kvRepository struct {
	*DB
	logger *logger.Logger
}

func NewKVRepository(db *DB, logger *logger.Logger) KVRepository {
	return &kvRepository{
		DB:     db,
		logger: logger,
	}
}

// Get returns the value of key or [ErrKeyNotFound].
func (k *kvRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := k.DB.QueryRowContext(ctx, getKV, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "kvRepository.Get").
			Str("key", key).
			Msg("failed to query key")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, nil
}

func (k *kvRepository) Set(ctx context.Context, key, value string) error {
	err := k.DB.withRetry(ctx, func(ctx context.Context) error {
		_, execErr := k.DB.ExecContext(ctx, setKV, key, value)
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "kvRepository.Set").
			Str("key", key).
			Msg("failed to set key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (k *kvRepository) Delete(ctx context.Context, key string) error {
	if _, err := k.DB.ExecContext(ctx, deleteKV, key); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "kvRepository.Delete").
			Str("key", key).
			Msg("failed to delete key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
