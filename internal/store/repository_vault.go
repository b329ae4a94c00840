package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// vaultRepository is the PostgreSQL-backed implementation of
// [VaultRepository]. Each account owns at most one row in "vaults".
type vaultRepository struct {
	*DB
	logger *logger.Logger
}

func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	return &vaultRepository{
		DB:     db,
		logger: logger,
	}
}

// GetVault returns the current blob of userID or [ErrVaultNotFound].
func (v *vaultRepository) GetVault(ctx context.Context, userID int64) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	var (
		record   models.VaultRecord
		lastHash sql.NullString
	)
	err := v.DB.QueryRowContext(ctx, getVault, userID).Scan(
		&record.UserID,
		&record.Blob,
		&record.Meta.UpdatedAt,
		&record.Meta.Schema,
		&lastHash,
		&record.AppVersion,
		&record.DeviceID,
		&record.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultRecord{}, ErrVaultNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.GetVault").
			Int64("user_id", userID).
			Msg("failed to query vault")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	record.Meta.LastEventHash = fromNullString(lastHash)

	return record, nil
}

// UpsertVault replaces the blob of record.UserID and returns the stored row
// with the server timestamp. Transient failures are retried.
func (v *vaultRepository) UpsertVault(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	err := v.DB.withRetry(ctx, func(ctx context.Context) error {
		return v.DB.QueryRowContext(ctx, upsertVault,
			record.UserID,
			record.Blob,
			record.Meta.UpdatedAt,
			record.Meta.Schema,
			toNullString(record.Meta.LastEventHash),
			record.AppVersion,
			record.DeviceID,
		).Scan(&record.UpdatedAt)
	})
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.UpsertVault").
			Int64("user_id", record.UserID).
			Msg("failed to upsert vault")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

// DeleteVault drops the blob and every history row of userID in one
// transaction. Deleting a missing vault is not an error.
func (v *vaultRepository) DeleteVault(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	tx, err := v.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.DeleteVault").
			Int64("user_id", userID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteAllVersions, userID); err != nil {
		log.Err(err).
			Str("func", "vaultRepository.DeleteVault").
			Int64("user_id", userID).
			Msg("failed to delete vault versions")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, deleteVault, userID); err != nil {
		log.Err(err).
			Str("func", "vaultRepository.DeleteVault").
			Int64("user_id", userID).
			Msg("failed to delete vault")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "vaultRepository.DeleteVault").
			Int64("user_id", userID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
