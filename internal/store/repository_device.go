package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

var deviceColumns = []string{"device_id", "label", "platform", "user_agent", "last_seen", "revoked", "revoked_at"}

type deviceRepository struct {
	*DB
	logger *logger.Logger
}

func NewDeviceRepository(db *DB, logger *logger.Logger) DeviceRepository {
	return &deviceRepository{
		DB:     db,
		logger: logger,
	}
}

// UpsertDevice registers the device or refreshes its descriptive fields and
// last_seen. A revoked device stays revoked.
func (d *deviceRepository) UpsertDevice(ctx context.Context, device models.Device) (models.Device, error) {
	log := logger.FromContext(ctx)

	var (
		saved     models.Device
		revokedAt sql.NullTime
	)
	err := d.DB.withRetry(ctx, func(ctx context.Context) error {
		return d.DB.QueryRowContext(ctx, upsertDevice,
			device.UserID,
			device.DeviceID,
			device.Label,
			device.Platform,
			device.UserAgent,
		).Scan(&saved.DeviceID, &saved.Label, &saved.Platform, &saved.UserAgent, &saved.LastSeen, &saved.Revoked, &revokedAt)
	})
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.UpsertDevice").
			Int64("user_id", device.UserID).
			Str("device_id", device.DeviceID).
			Msg("failed to upsert device")
		return models.Device{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	saved.UserID = device.UserID
	if revokedAt.Valid {
		saved.RevokedAt = &revokedAt.Time
	}

	return saved, nil
}

// Heartbeat bumps last_seen. Unknown devices yield [ErrDeviceNotFound].
func (d *deviceRepository) Heartbeat(ctx context.Context, userID int64, deviceID string) error {
	return d.execForDevice(ctx, "deviceRepository.Heartbeat", heartbeatDevice, userID, deviceID)
}

// RevokeDevice marks the device revoked. Revoking twice keeps the first
// revoked_at.
func (d *deviceRepository) RevokeDevice(ctx context.Context, userID int64, deviceID string) error {
	return d.execForDevice(ctx, "deviceRepository.RevokeDevice", revokeDevice, userID, deviceID)
}

func (d *deviceRepository) DeleteDevice(ctx context.Context, userID int64, deviceID string) error {
	return d.execForDevice(ctx, "deviceRepository.DeleteDevice", deleteDevice, userID, deviceID)
}

func (d *deviceRepository) GetDevice(ctx context.Context, userID int64, deviceID string) (models.Device, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select(deviceColumns...).
		From("devices").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"device_id": deviceID}).
		ToSql()
	if err != nil {
		return models.Device{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	device, err := scanDevice(d.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Device{}, ErrDeviceNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.GetDevice").
			Int64("user_id", userID).
			Str("device_id", deviceID).
			Msg("failed to query device")
		return models.Device{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	device.UserID = userID

	return device, nil
}

// ListDevices returns the devices of userID, most recently seen first.
func (d *deviceRepository) ListDevices(ctx context.Context, userID int64) ([]models.Device, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select(deviceColumns...).
		From("devices").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("last_seen DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.ListDevices").
			Int64("user_id", userID).
			Msg("failed to execute query for listing devices")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	devices := make([]models.Device, 0, 4)
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		device.UserID = userID
		devices = append(devices, device)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return devices, nil
}

func (d *deviceRepository) execForDevice(ctx context.Context, fn, query string, userID int64, deviceID string) error {
	log := logger.FromContext(ctx)

	res, err := d.DB.ExecContext(ctx, query, userID, deviceID)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Int64("user_id", userID).
			Str("device_id", deviceID).
			Msg("failed to execute device statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDevice(row rowScanner) (models.Device, error) {
	var (
		device    models.Device
		revokedAt sql.NullTime
	)
	err := row.Scan(&device.DeviceID, &device.Label, &device.Platform, &device.UserAgent, &device.LastSeen, &device.Revoked, &revokedAt)
	if err != nil {
		return models.Device{}, err
	}
	if revokedAt.Valid {
		device.RevokedAt = &revokedAt.Time
	}
	return device, nil
}
