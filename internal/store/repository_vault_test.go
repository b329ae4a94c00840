package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

var vaultColumns = []string{"user_id", "blob", "meta_updated_at", "meta_schema", "last_event_hash", "app_version", "device_id", "updated_at"}

func newTestVaultRepo(t *testing.T) (*vaultRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &vaultRepository{DB: db, logger: logger.Nop()}, mock
}

func TestGetVault(t *testing.T) {
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		repo, mock := newTestVaultRepo(t)
		mock.ExpectQuery("SELECT user_id, blob").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(vaultColumns).
				AddRow(3, "YmxvYg==", 1700000000123, 2, "abc", "1.2.0", "dev-1", now))

		rec, err := repo.GetVault(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "YmxvYg==", rec.Blob)
		assert.Equal(t, int64(1700000000123), rec.Meta.UpdatedAt)
		assert.Equal(t, 2, rec.Meta.Schema)
		require.NotNil(t, rec.Meta.LastEventHash)
		assert.Equal(t, "abc", *rec.Meta.LastEventHash)
		assert.Equal(t, "dev-1", rec.DeviceID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null last event hash", func(t *testing.T) {
		repo, mock := newTestVaultRepo(t)
		mock.ExpectQuery("SELECT user_id, blob").
			WillReturnRows(sqlmock.NewRows(vaultColumns).
				AddRow(3, "b", 1, 2, nil, "", "", now))

		rec, err := repo.GetVault(context.Background(), 3)
		require.NoError(t, err)
		assert.Nil(t, rec.Meta.LastEventHash)
	})

	t.Run("absent", func(t *testing.T) {
		repo, mock := newTestVaultRepo(t)
		mock.ExpectQuery("SELECT user_id, blob").
			WillReturnRows(sqlmock.NewRows(vaultColumns))

		_, err := repo.GetVault(context.Background(), 3)
		assert.ErrorIs(t, err, ErrVaultNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := newTestVaultRepo(t)
		mock.ExpectQuery("SELECT user_id, blob").
			WillReturnError(errors.New("boom"))

		_, err := repo.GetVault(context.Background(), 3)
		assert.ErrorIs(t, err, ErrExecutingQuery)
	})
}

func TestUpsertVault(t *testing.T) {
	repo, mock := newTestVaultRepo(t)
	hash := "deadbeef"
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO vaults").
		WithArgs(int64(5), "blob", int64(10), 2, hash, "1.0.0", "dev").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	rec, err := repo.UpsertVault(context.Background(), models.VaultRecord{
		UserID:     5,
		Blob:       "blob",
		Meta:       models.VaultMeta{UpdatedAt: 10, Schema: 2, LastEventHash: &hash},
		AppVersion: "1.0.0",
		DeviceID:   "dev",
	})
	require.NoError(t, err)
	assert.Equal(t, now, rec.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertVault_NullHash(t *testing.T) {
	repo, mock := newTestVaultRepo(t)

	mock.ExpectQuery("INSERT INTO vaults").
		WithArgs(int64(5), "blob", int64(10), 2, nil, "", "").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	_, err := repo.UpsertVault(context.Background(), models.VaultRecord{
		UserID: 5,
		Blob:   "blob",
		Meta:   models.VaultMeta{UpdatedAt: 10, Schema: 2},
	})
	require.NoError(t, err)
}

func TestUpsertVault_RetriesTransientErrors(t *testing.T) {
	repo, mock := newTestVaultRepo(t)
	repo.DB.errorClassificator = NewPostgresErrorClassifier()

	mock.ExpectQuery("INSERT INTO vaults").WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectQuery("INSERT INTO vaults").WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectQuery("INSERT INTO vaults").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	_, err := repo.UpsertVault(context.Background(), models.VaultRecord{UserID: 1, Blob: "b"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertVault_DoesNotRetryConstraintErrors(t *testing.T) {
	repo, mock := newTestVaultRepo(t)
	repo.DB.errorClassificator = NewPostgresErrorClassifier()

	mock.ExpectQuery("INSERT INTO vaults").WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.UpsertVault(context.Background(), models.VaultRecord{UserID: 1, Blob: "b"})
	require.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteVault(t *testing.T) {
	t.Run("commits both deletes", func(t *testing.T) {
		repo, mock := newTestVaultRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM vault_versions").WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectExec("DELETE FROM vaults").WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.DeleteVault(context.Background(), 9))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		repo, mock := newTestVaultRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM vault_versions").WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := repo.DeleteVault(context.Background(), 9)
		require.ErrorIs(t, err, ErrExecutingStatement)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin fails", func(t *testing.T) {
		repo, mock := newTestVaultRepo(t)
		mock.ExpectBegin().WillReturnError(errors.New("no tx"))

		assert.ErrorIs(t, repo.DeleteVault(context.Background(), 9), ErrBeginningTransaction)
	})

	t.Run("commit fails", func(t *testing.T) {
		repo, mock := newTestVaultRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM vault_versions").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM vaults").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit().WillReturnError(errors.New("commit"))

		assert.ErrorIs(t, repo.DeleteVault(context.Background(), 9), ErrCommitingTransaction)
	})
}
