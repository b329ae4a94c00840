package service

import (
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

type Services struct {
	AuthService    AuthService
	VaultService   VaultService
	DeviceService  DeviceService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	vaultSvc := NewVaultValidationService().
		Wrap(NewVaultService(storages.VaultRepository, storages.VersionRepository, cfg.Server, logger))

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		VaultService:   vaultSvc,
		DeviceService:  NewDeviceService(storages.DeviceRepository, logger),
		AppInfoService: appInfo,
	}, nil
}
