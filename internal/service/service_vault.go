package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

const (
	// DefaultVersionKeep is how many history snapshots survive a prune.
	DefaultVersionKeep = 20
	// DefaultVersionListLimit is the page size of a version listing.
	DefaultVersionListLimit = 10
	// MaxVersionListLimit caps a single listing.
	MaxVersionListLimit = 100
)

// vaultService is the server-side remote store. Every history insert is
// followed by a prune to versionKeep rows, so the table stays bounded even
// if a client never prunes.
type vaultService struct {
	vaults   store.VaultRepository
	versions store.VersionRepository

	versionKeep int

	logger *logger.Logger
}

// NewVaultService constructs a [VaultService] over the vault and history
// repositories.
func NewVaultService(vaults store.VaultRepository, versions store.VersionRepository, cfg config.Server, logger *logger.Logger) VaultService {
	keep := cfg.VersionKeep
	if keep <= 0 {
		keep = DefaultVersionKeep
	}

	return &vaultService{
		vaults:      vaults,
		versions:    versions,
		versionKeep: keep,
		logger:      logger,
	}
}

func (s *vaultService) GetVault(ctx context.Context, userID int64) (models.VaultRecord, error) {
	record, err := s.vaults.GetVault(ctx, userID)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("get vault: %w", err)
	}
	return record, nil
}

func (s *vaultService) PutVault(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	stored, err := s.vaults.UpsertVault(ctx, record)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", record.UserID).Msg("vault upsert failed")
		return models.VaultRecord{}, fmt.Errorf("put vault: %w", err)
	}
	return stored, nil
}

func (s *vaultService) DeleteVault(ctx context.Context, userID int64) error {
	if err := s.vaults.DeleteVault(ctx, userID); err != nil {
		return fmt.Errorf("delete vault: %w", err)
	}
	return nil
}

func (s *vaultService) InsertVersion(ctx context.Context, version models.VaultVersion) (models.VaultVersion, error) {
	stored, err := s.versions.InsertVersion(ctx, version)
	if err != nil {
		return models.VaultVersion{}, fmt.Errorf("insert version: %w", err)
	}

	if _, err = s.versions.PruneVersions(ctx, version.UserID, s.versionKeep); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Int64("user_id", version.UserID).
			Msg("pruning history after insert failed")
	}

	return stored, nil
}

// ListVersions returns the newest snapshots first. A non-positive limit
// selects the default page; limits above MaxVersionListLimit are capped.
func (s *vaultService) ListVersions(ctx context.Context, userID int64, limit int) ([]models.VersionInfo, error) {
	if limit <= 0 {
		limit = DefaultVersionListLimit
	}
	if limit > MaxVersionListLimit {
		limit = MaxVersionListLimit
	}

	list, err := s.versions.ListVersions(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	if list == nil {
		list = []models.VersionInfo{}
	}
	return list, nil
}

func (s *vaultService) GetVersion(ctx context.Context, userID int64, createdAt time.Time) (models.VaultVersion, error) {
	version, err := s.versions.GetVersion(ctx, userID, createdAt)
	if err != nil {
		return models.VaultVersion{}, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}

// PruneVersions keeps the newest keep snapshots. keep is clamped to at least
// one row: wiping the history goes through DeleteVault.
func (s *vaultService) PruneVersions(ctx context.Context, userID int64, keep int) (int64, error) {
	if keep <= 0 {
		keep = s.versionKeep
	}

	n, err := s.versions.PruneVersions(ctx, userID, keep)
	if err != nil {
		return 0, fmt.Errorf("prune versions: %w", err)
	}
	return n, nil
}
