package store

import (
	"context"

	"github.com/pentagon14032008-ux/Life-OS/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// Keys of the client key/value table.
const (
	KeySyncMarker = "sync_marker"
	KeyDeviceID   = "device_id"
	KeySession    = "session"
)

// LocalStateRepository is the plaintext offline mirror of the current state.
// It holds exactly one row.
type LocalStateRepository interface {
	LoadState(ctx context.Context) (*models.State, error)
	SaveState(ctx context.Context, state *models.State) error
	ClearState(ctx context.Context) error
}

// KVRepository stores small client settings that outlive a session.
type KVRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
