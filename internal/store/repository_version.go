package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

const versionsTable = "vault_versions"

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// versionRepository is the PostgreSQL-backed implementation of
// [VersionRepository]. History rows are append-only; PruneVersions is the
// only way they disappear apart from [VaultRepository.DeleteVault].
type versionRepository struct {
	*DB
	logger *logger.Logger
}

func NewVersionRepository(db *DB, logger *logger.Logger) VersionRepository {
	return &versionRepository{
		DB:     db,
		logger: logger,
	}
}

// InsertVersion appends a snapshot and returns it with the server-assigned
// CreatedAt.
func (r *versionRepository) InsertVersion(ctx context.Context, version models.VaultVersion) (models.VaultVersion, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Insert(versionsTable).
		Columns("user_id", "blob", "meta_updated_at", "meta_schema", "last_event_hash", "app_version").
		Values(
			version.UserID,
			version.Blob,
			version.Meta.UpdatedAt,
			version.Meta.Schema,
			toNullString(version.Meta.LastEventHash),
			version.AppVersion,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return models.VaultVersion{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.DB.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, query, args...).Scan(&version.CreatedAt)
	})
	if err != nil {
		log.Err(err).
			Str("func", "versionRepository.InsertVersion").
			Int64("user_id", version.UserID).
			Msg("failed to insert vault version")
		return models.VaultVersion{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return version, nil
}

// ListVersions returns at most limit snapshots of userID, newest first,
// without their blobs.
func (r *versionRepository) ListVersions(ctx context.Context, userID int64, limit int) ([]models.VersionInfo, error) {
	log := logger.FromContext(ctx)

	builder := psql.Select("created_at", "app_version", "meta_updated_at", "meta_schema", "last_event_hash").
		From(versionsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "versionRepository.ListVersions").
			Int64("user_id", userID).
			Msg("failed to execute query for listing versions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	infos := make([]models.VersionInfo, 0, limit)

	for rows.Next() {
		var (
			info     models.VersionInfo
			lastHash sql.NullString
		)
		if err = rows.Scan(&info.CreatedAt, &info.AppVersion, &info.Meta.UpdatedAt, &info.Meta.Schema, &lastHash); err != nil {
			log.Err(err).
				Str("func", "versionRepository.ListVersions").
				Int64("user_id", userID).
				Msg("failed to scan version row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		info.Meta.LastEventHash = fromNullString(lastHash)
		infos = append(infos, info)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return infos, nil
}

// GetVersion returns the snapshot of userID created exactly at createdAt or
// [ErrVersionNotFound].
func (r *versionRepository) GetVersion(ctx context.Context, userID int64, createdAt time.Time) (models.VaultVersion, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select("user_id", "blob", "meta_updated_at", "meta_schema", "last_event_hash", "app_version", "created_at").
		From(versionsTable).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"created_at": createdAt}).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return models.VaultVersion{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		version  models.VaultVersion
		lastHash sql.NullString
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(
		&version.UserID,
		&version.Blob,
		&version.Meta.UpdatedAt,
		&version.Meta.Schema,
		&lastHash,
		&version.AppVersion,
		&version.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultVersion{}, ErrVersionNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "versionRepository.GetVersion").
			Int64("user_id", userID).
			Time("created_at", createdAt).
			Msg("failed to query vault version")
		return models.VaultVersion{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	version.Meta.LastEventHash = fromNullString(lastHash)

	return version, nil
}

// PruneVersions deletes everything but the keep newest snapshots of userID
// and reports how many rows were removed. keep <= 0 removes nothing.
func (r *versionRepository) PruneVersions(ctx context.Context, userID int64, keep int) (int64, error) {
	log := logger.FromContext(ctx)

	if keep <= 0 {
		return 0, nil
	}

	query, args, err := psql.Delete(versionsTable).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Expr(
			"id NOT IN (SELECT id FROM vault_versions WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?)",
			userID, keep,
		)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var deleted int64
	err = r.DB.withRetry(ctx, func(ctx context.Context) error {
		res, err := r.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "versionRepository.PruneVersions").
			Int64("user_id", userID).
			Int("keep", keep).
			Msg("failed to prune vault versions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}
