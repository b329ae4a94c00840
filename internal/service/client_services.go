package service

import (
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/internal/adapter"
	"github.com/pentagon14032008-ux/Life-OS/internal/audit"
	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/crypto"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/internal/validators"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

type ClientServices struct {
	Session *SyncSession

	CryptoService   ClientCryptoService
	AuthService     ClientAuthService
	DeviceService   ClientDeviceService
	StateService    LocalStateService
	SyncService     ClientSyncService
	SyncCoordinator SyncCoordinator
	SyncScheduler   SyncScheduler
	ExportService   ExportService
	TaskService     TaskService
}

// NewClientServices wires the client. onLock is called when the idle timer
// locks the vault and may be nil.
func NewClientServices(
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	cfg config.ClientConfig,
	buildInfo models.AppBuildInfo,
	onLock func(),
	logger *logger.Logger,
) (*ClientServices, error) {
	clock := utils.Clock(utils.SystemClock)
	ids := utils.NewUUIDGenerator()
	recorder := audit.NewRecorder(clock, ids)

	exportValidator, err := validators.NewExportValidator()
	if err != nil {
		return nil, fmt.Errorf("export validator: %w", err)
	}

	sess := NewSyncSession("", buildInfo.BuildVersion())

	cryptoSvc := NewClientCryptoService(crypto.NewVault(crypto.WithIterations(cfg.Vault.Iterations)), clock)
	authSvc := NewClientAuthService(storages.KVRepository, serverAdapter, crypto.NewKeyChainService(), clock, logger)
	deviceSvc := NewClientDeviceService(storages.KVRepository, serverAdapter, cfg.Vault.DeviceLabel, buildInfo.BuildVersion(), logger)

	stateSvc := NewLocalStateService(storages.StateRepository, NewIntegrityService(clock), recorder, sess, clock, cfg.Vault.AuditKeep, logger)
	syncSvc := NewClientSyncService(serverAdapter, deviceSvc, cryptoSvc, storages.KVRepository, cfg.Vault, logger)
	coordinator := NewSyncCoordinator(syncSvc, stateSvc, sess, recorder, clock, logger)
	scheduler := NewSyncScheduler(coordinator, deviceSvc, sess, cfg.Workers, onLock, logger)

	return &ClientServices{
		Session:         sess,
		CryptoService:   cryptoSvc,
		AuthService:     authSvc,
		DeviceService:   deviceSvc,
		StateService:    stateSvc,
		SyncService:     syncSvc,
		SyncCoordinator: coordinator,
		SyncScheduler:   scheduler,
		ExportService:   NewExportService(stateSvc, cryptoSvc, sess, recorder, exportValidator, scheduler, clock, buildInfo, logger),
		TaskService:     NewTaskService(stateSvc, sess, recorder, ids, scheduler, clock, logger),
	}, nil
}
