package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name        string
		info        models.AppBuildInfo
		wantErr     error
		wantVersion string
	}{
		{name: "release build", info: models.NewAppBuildInfo("1.0.0", "2026-10-01", "abc"), wantVersion: "1.0.0"},
		{name: "development build", info: models.NewAppBuildInfo("", "", ""), wantVersion: models.NotAvailable},
		{name: "zero value", info: models.AppBuildInfo{}, wantErr: ErrVersionIsNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(tt.info, logger.Nop())
			if tt.wantErr != nil {
				assert.Nil(t, svc)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, svc.GetAppVersion(context.Background()))
		})
	}
}

func TestAppInfoService_GetBuildInfo(t *testing.T) {
	info := models.NewAppBuildInfo("v1.2.3-beta+build.42", "2026-03-01", "deadbeef")
	svc, err := NewAppInfoService(info, logger.Nop())
	require.NoError(t, err)

	// отменённый контекст ответу не мешает
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := svc.GetBuildInfo(ctx)
	assert.Equal(t, "v1.2.3-beta+build.42", got.BuildVersion())
	assert.Equal(t, "2026-03-01+deadbeef", got.Build())
}
