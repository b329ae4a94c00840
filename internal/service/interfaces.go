package service

import (
	"context"
	"time"

	"github.com/pentagon14032008-ux/Life-OS/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	Params(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// VaultService stores one encrypted vault per account plus its bounded
// history. It never sees plaintext.
type VaultService interface {
	GetVault(ctx context.Context, userID int64) (models.VaultRecord, error)
	PutVault(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	// DeleteVault removes the vault together with every history row.
	DeleteVault(ctx context.Context, userID int64) error

	InsertVersion(ctx context.Context, version models.VaultVersion) (models.VaultVersion, error)
	ListVersions(ctx context.Context, userID int64, limit int) ([]models.VersionInfo, error)
	GetVersion(ctx context.Context, userID int64, createdAt time.Time) (models.VaultVersion, error)
	PruneVersions(ctx context.Context, userID int64, keep int) (int64, error)
}

type DeviceService interface {
	RegisterDevice(ctx context.Context, device models.Device) (models.Device, error)
	Heartbeat(ctx context.Context, userID int64, deviceID string) error
	GetDevice(ctx context.Context, userID int64, deviceID string) (models.Device, error)
	ListDevices(ctx context.Context, userID int64) ([]models.Device, error)
	RevokeDevice(ctx context.Context, userID int64, deviceID string) error
	DeleteDevice(ctx context.Context, userID int64, deviceID string) error

	// CheckDevice returns ErrDeviceRevoked for a revoked device. Unknown
	// devices pass: they are registered on their first run.
	CheckDevice(ctx context.Context, userID int64, deviceID string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validation.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService
}
