package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/pentagon14032008-ux/Life-OS/internal/adapter"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

type clientDeviceService struct {
	kv      store.KVRepository
	devices adapter.DeviceAdapter
	auth    adapter.AuthAdapter
	ids     *utils.UUIDGenerator

	label      string
	appVersion string

	mu       sync.Mutex
	deviceID string

	logger *logger.Logger
}

// NewClientDeviceService builds the device identity service. An empty label
// falls back to the host name.
func NewClientDeviceService(kv store.KVRepository, serverAdapter adapter.ServerAdapter, label, appVersion string, logger *logger.Logger) ClientDeviceService {
	if label == "" {
		if host, err := os.Hostname(); err == nil {
			label = host
		}
	}
	return &clientDeviceService{
		kv:         kv,
		devices:    serverAdapter,
		auth:       serverAdapter,
		ids:        utils.NewUUIDGenerator(),
		label:      label,
		appVersion: appVersion,
		logger:     logger,
	}
}

func (d *clientDeviceService) DeviceID(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.deviceID != "" {
		return d.deviceID, nil
	}

	id, err := d.kv.Get(ctx, store.KeyDeviceID)
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
		id = d.ids.Generate()
		if err = d.kv.Set(ctx, store.KeyDeviceID, id); err != nil {
			return "", fmt.Errorf("store device id: %w", err)
		}
		d.logger.Info().Str("device_id", id).Msg("new device identity created")
	case err != nil:
		return "", fmt.Errorf("load device id: %w", err)
	}

	d.deviceID = id
	d.auth.SetDeviceID(id)
	return id, nil
}

func (d *clientDeviceService) Register(ctx context.Context) (models.Device, error) {
	id, err := d.DeviceID(ctx)
	if err != nil {
		return models.Device{}, err
	}

	device, err := d.devices.RegisterDevice(ctx, models.Device{
		DeviceID:  id,
		Label:     d.label,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		UserAgent: "life-os/" + d.appVersion,
	})
	if err != nil {
		return models.Device{}, fmt.Errorf("register device: %w", mapAdapterError(err))
	}
	return device, nil
}

func (d *clientDeviceService) Heartbeat(ctx context.Context) error {
	id, err := d.DeviceID(ctx)
	if err != nil {
		return err
	}
	if err = d.devices.Heartbeat(ctx, id); err != nil {
		return fmt.Errorf("heartbeat: %w", mapAdapterError(err))
	}
	return nil
}

func (d *clientDeviceService) EnsureActive(ctx context.Context) error {
	id, err := d.DeviceID(ctx)
	if err != nil {
		return err
	}

	device, err := d.devices.GetDevice(ctx, id)
	if errors.Is(err, adapter.ErrNotFound) {
		device, err = d.Register(ctx)
		if err != nil {
			return err
		}
	} else if err != nil {
		return fmt.Errorf("check device: %w", mapAdapterError(err))
	}

	if device.Revoked {
		return ErrDeviceRevoked
	}
	return nil
}

func (d *clientDeviceService) List(ctx context.Context) ([]models.Device, error) {
	devices, err := d.devices.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", mapAdapterError(err))
	}
	return devices, nil
}

func (d *clientDeviceService) Revoke(ctx context.Context, deviceID string) error {
	if err := d.devices.RevokeDevice(ctx, deviceID); err != nil {
		return fmt.Errorf("revoke device: %w", mapAdapterError(err))
	}
	return nil
}
