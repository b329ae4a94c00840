// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client's transport to the remote vault server.
//
// [ServerAdapter] bundles account authentication, the remote store contract
// used by the sync engine and device management. The HTTP implementation
// ([NewHTTPServerAdapter]) maps HTTP statuses onto the sentinel errors of this
// package so that callers can use [errors.Is] (e.g. [ErrNotFound] for 404,
// [ErrForbidden] for a revoked device) and wraps failures that never reached
// the server in [ErrNetwork].
package adapter

import (
	"context"
	"time"

	"github.com/pentagon14032008-ux/Life-OS/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// AuthAdapter manages the account session with the server.
type AuthAdapter interface {
	// SetToken stores the bearer token attached to every authenticated
	// request.
	SetToken(token string)
	Token() string

	// SetDeviceID sets the X-Device-ID header of authenticated requests.
	SetDeviceID(deviceID string)

	// Register creates the account and stores the returned bearer token.
	Register(ctx context.Context, user models.User) (models.User, error)

	// RequestSalt fetches the encryption salt stored for user.Login. It is
	// needed to derive the KEK before the auth hash can be computed.
	RequestSalt(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates with the pre-computed auth hash and stores the
	// returned bearer token.
	Login(ctx context.Context, user models.User) (models.User, error)
}

// RemoteStore is the remote vault contract: one blob per account plus a
// bounded history.
type RemoteStore interface {
	// GetVault returns nil and no error when the account has no vault yet.
	GetVault(ctx context.Context) (*models.VaultRecord, error)
	PutVault(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	DeleteVault(ctx context.Context) error

	InsertVersion(ctx context.Context, version models.VaultVersion) error
	ListVersions(ctx context.Context, limit int) ([]models.VersionInfo, error)
	// GetVersion returns nil and no error when no snapshot matches.
	GetVersion(ctx context.Context, createdAt time.Time) (*models.VaultVersion, error)
	PruneVersions(ctx context.Context, keep int) (int64, error)
}

// DeviceAdapter manages the installations registered for the account.
type DeviceAdapter interface {
	RegisterDevice(ctx context.Context, device models.Device) (models.Device, error)
	Heartbeat(ctx context.Context, deviceID string) error
	GetDevice(ctx context.Context, deviceID string) (models.Device, error)
	ListDevices(ctx context.Context) ([]models.Device, error)
	RevokeDevice(ctx context.Context, deviceID string) error
	DeleteDevice(ctx context.Context, deviceID string) error
}

// ServerAdapter is everything the client needs from the server.
type ServerAdapter interface {
	AuthAdapter
	RemoteStore
	DeviceAdapter

	// ServerVersion returns the build version reported by the server.
	ServerVersion(ctx context.Context) (string, error)
}
