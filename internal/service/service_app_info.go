package service

import (
	"context"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// appInfoService answers GET /api/version. A development build reports
// models.NotAvailable; only an AppBuildInfo that skipped the constructor
// is refused.
type appInfoService struct {
	info   models.AppBuildInfo
	logger *logger.Logger
}

func NewAppInfoService(buildInfo models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if buildInfo.BuildVersion() == "" {
		return nil, ErrVersionIsNotSpecified
	}
	if !buildInfo.Known() {
		logger.Warn().Msg("build version is not set, serving a development build")
	}
	return &appInfoService{info: buildInfo, logger: logger}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.info.BuildVersion()
}

func (s *appInfoService) GetBuildInfo(context.Context) models.AppBuildInfo {
	return s.info
}
