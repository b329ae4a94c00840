package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pentagon14032008-ux/Life-OS/internal/adapter"
	"github.com/pentagon14032008-ux/Life-OS/internal/audit"
	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

type clientSyncService struct {
	remote  adapter.RemoteStore
	devices ClientDeviceService
	crypto  ClientCryptoService
	kv      store.KVRepository

	versionKeep int
	listLimit   int

	logger *logger.Logger
}

// NewClientSyncService builds the sync engine over the remote store.
func NewClientSyncService(
	remote adapter.RemoteStore,
	devices ClientDeviceService,
	cryptoSvc ClientCryptoService,
	kv store.KVRepository,
	cfg config.ClientVault,
	logger *logger.Logger,
) ClientSyncService {
	keep := cfg.VersionKeep
	if keep <= 0 {
		keep = DefaultVersionKeep
	}
	limit := cfg.VersionListLimit
	if limit <= 0 {
		limit = DefaultVersionListLimit
	}

	return &clientSyncService{
		remote:      remote,
		devices:     devices,
		crypto:      cryptoSvc,
		kv:          kv,
		versionKeep: keep,
		listLimit:   limit,
		logger:      logger,
	}
}

func (s *clientSyncService) Push(ctx context.Context, sess *SyncSession, state *models.State) error {
	if sess.Locked() {
		return ErrVaultLocked
	}
	if err := s.devices.EnsureActive(ctx); err != nil {
		return err
	}

	_, blob, err := s.crypto.Seal(sess, state)
	if err != nil {
		return err
	}

	meta := models.VaultMeta{
		UpdatedAt:     state.UpdatedAt,
		Schema:        state.Schema,
		LastEventHash: audit.LastEventHash(state.Audit),
	}

	record := models.VaultRecord{
		Blob:       blob,
		Meta:       meta,
		AppVersion: sess.AppVersion(),
		DeviceID:   sess.DeviceID(),
	}
	if _, err = s.remote.PutVault(ctx, record); err != nil {
		return fmt.Errorf("push vault: %w", mapAdapterError(err))
	}

	s.recordVersion(ctx, blob, meta, sess.AppVersion())

	return s.MarkSynced(ctx, sess, state.UpdatedAt)
}

// recordVersion stores a history snapshot and prunes the history. Failures
// are logged and never fail the push that triggered them.
func (s *clientSyncService) recordVersion(ctx context.Context, blob string, meta models.VaultMeta, appVersion string) {
	version := models.VaultVersion{Blob: blob, Meta: meta, AppVersion: appVersion}
	if err := s.remote.InsertVersion(ctx, version); err != nil {
		s.logger.Warn().Err(err).Int64("updated_at", meta.UpdatedAt).Msg("history snapshot was not stored")
		return
	}
	if _, err := s.remote.PruneVersions(ctx, s.versionKeep); err != nil {
		s.logger.Warn().Err(err).Int("keep", s.versionKeep).Msg("history prune failed")
	}
}

func (s *clientSyncService) Pull(ctx context.Context, sess *SyncSession) (*models.State, error) {
	if sess.Locked() {
		return nil, ErrVaultLocked
	}
	if err := s.devices.EnsureActive(ctx); err != nil {
		return nil, err
	}

	record, err := s.remote.GetVault(ctx)
	if err != nil {
		return nil, fmt.Errorf("pull vault: %w", mapAdapterError(err))
	}
	if record == nil {
		return nil, nil
	}

	return s.crypto.Open(sess, record.Blob)
}

func (s *clientSyncService) PullVersion(ctx context.Context, sess *SyncSession, createdAt time.Time) (*models.State, error) {
	if sess.Locked() {
		return nil, ErrVaultLocked
	}
	if err := s.devices.EnsureActive(ctx); err != nil {
		return nil, err
	}

	version, err := s.remote.GetVersion(ctx, createdAt)
	if err != nil {
		return nil, fmt.Errorf("pull version: %w", mapAdapterError(err))
	}
	if version == nil {
		return nil, nil
	}

	return s.crypto.Open(sess, version.Blob)
}

func (s *clientSyncService) ListVersions(ctx context.Context, limit int) ([]models.VersionInfo, error) {
	if limit <= 0 {
		limit = s.listLimit
	}
	list, err := s.remote.ListVersions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", mapAdapterError(err))
	}
	return list, nil
}

func (s *clientSyncService) Compare(ctx context.Context, local *models.State, marker *int64) (models.SyncDecision, error) {
	record, err := s.remote.GetVault(ctx)
	if err != nil {
		return models.SyncDecision{}, fmt.Errorf("compare: %w", mapAdapterError(err))
	}

	var remoteMeta *models.VaultMeta
	if record != nil {
		m := record.Meta
		remoteMeta = &m
	}

	return ClassifyDivergence(local.UpdatedAt, remoteMeta, marker), nil
}

func (s *clientSyncService) Wipe(ctx context.Context, sess *SyncSession) error {
	if err := s.remote.DeleteVault(ctx); err != nil {
		return fmt.Errorf("wipe remote vault: %w", mapAdapterError(err))
	}

	return s.ForgetMarker(ctx, sess)
}

func (s *clientSyncService) ForgetMarker(ctx context.Context, sess *SyncSession) error {
	sess.ClearMarker()
	if err := s.kv.Delete(ctx, store.KeySyncMarker); err != nil {
		return fmt.Errorf("forget sync marker: %w", err)
	}
	return nil
}

func (s *clientSyncService) MarkSynced(ctx context.Context, sess *SyncSession, updatedAt int64) error {
	sess.SetMarker(updatedAt)
	if err := s.kv.Set(ctx, store.KeySyncMarker, strconv.FormatInt(updatedAt, 10)); err != nil {
		return fmt.Errorf("persist sync marker: %w", err)
	}
	return nil
}

func (s *clientSyncService) RestoreMarker(ctx context.Context, sess *SyncSession) error {
	raw, err := s.kv.Get(ctx, store.KeySyncMarker)
	if errors.Is(err, store.ErrKeyNotFound) {
		sess.ClearMarker()
		return nil
	}
	if err != nil {
		return fmt.Errorf("load sync marker: %w", err)
	}

	marker, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn().Str("marker", raw).Msg("stored sync marker is not a number, ignoring")
		sess.ClearMarker()
		return nil
	}
	sess.SetMarker(marker)
	return nil
}
