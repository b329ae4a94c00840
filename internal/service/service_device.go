package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/internal/validators"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

type deviceService struct {
	devices   store.DeviceRepository
	validator validators.Validator

	logger *logger.Logger
}

// NewDeviceService constructs the server-side device registry.
func NewDeviceService(devices store.DeviceRepository, logger *logger.Logger) DeviceService {
	return &deviceService{
		devices:   devices,
		validator: validators.NewVaultValidator(),
		logger:    logger,
	}
}

// RegisterDevice upserts the device. The revocation flag is never touched
// by registration: a revoked installation stays revoked.
func (s *deviceService) RegisterDevice(ctx context.Context, device models.Device) (models.Device, error) {
	if err := s.validator.Validate(ctx, device); err != nil {
		return models.Device{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	stored, err := s.devices.UpsertDevice(ctx, device)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("device_id", device.DeviceID).Msg("device upsert failed")
		return models.Device{}, fmt.Errorf("register device: %w", err)
	}
	return stored, nil
}

func (s *deviceService) Heartbeat(ctx context.Context, userID int64, deviceID string) error {
	if err := s.devices.Heartbeat(ctx, userID, deviceID); err != nil {
		return fmt.Errorf("heartbeat: %w", err)
	}
	return nil
}

func (s *deviceService) GetDevice(ctx context.Context, userID int64, deviceID string) (models.Device, error) {
	device, err := s.devices.GetDevice(ctx, userID, deviceID)
	if err != nil {
		return models.Device{}, fmt.Errorf("get device: %w", err)
	}
	return device, nil
}

func (s *deviceService) ListDevices(ctx context.Context, userID int64) ([]models.Device, error) {
	devices, err := s.devices.ListDevices(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	if devices == nil {
		devices = []models.Device{}
	}
	return devices, nil
}

func (s *deviceService) RevokeDevice(ctx context.Context, userID int64, deviceID string) error {
	if err := s.devices.RevokeDevice(ctx, userID, deviceID); err != nil {
		return fmt.Errorf("revoke device: %w", err)
	}
	logger.FromContext(ctx).Info().Int64("user_id", userID).Str("device_id", deviceID).Msg("device revoked")
	return nil
}

func (s *deviceService) DeleteDevice(ctx context.Context, userID int64, deviceID string) error {
	if err := s.devices.DeleteDevice(ctx, userID, deviceID); err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	return nil
}

func (s *deviceService) CheckDevice(ctx context.Context, userID int64, deviceID string) error {
	device, err := s.devices.GetDevice(ctx, userID, deviceID)
	if errors.Is(err, store.ErrDeviceNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("check device: %w", err)
	}
	if device.Revoked {
		return ErrDeviceRevoked
	}
	return nil
}
