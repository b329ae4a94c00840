package store

import (
	"context"
	"time"

	"github.com/pentagon14032008-ux/Life-OS/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)
}

// VaultRepository stores the single current blob per account.
type VaultRepository interface {
	GetVault(ctx context.Context, userID int64) (models.VaultRecord, error)
	UpsertVault(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	// DeleteVault removes the blob and its whole history.
	DeleteVault(ctx context.Context, userID int64) error
}

// VersionRepository stores the bounded blob history.
type VersionRepository interface {
	InsertVersion(ctx context.Context, version models.VaultVersion) (models.VaultVersion, error)
	ListVersions(ctx context.Context, userID int64, limit int) ([]models.VersionInfo, error)
	GetVersion(ctx context.Context, userID int64, createdAt time.Time) (models.VaultVersion, error)
	PruneVersions(ctx context.Context, userID int64, keep int) (int64, error)
}

// DeviceRepository stores the client installations of each account.
type DeviceRepository interface {
	UpsertDevice(ctx context.Context, device models.Device) (models.Device, error)
	Heartbeat(ctx context.Context, userID int64, deviceID string) error
	GetDevice(ctx context.Context, userID int64, deviceID string) (models.Device, error)
	ListDevices(ctx context.Context, userID int64) ([]models.Device, error)
	RevokeDevice(ctx context.Context, userID int64, deviceID string) error
	DeleteDevice(ctx context.Context, userID int64, deviceID string) error
}
