package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pentagon14032008-ux/Life-OS/internal/validators"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// VaultValidationService checks every write before it reaches the wrapped
// VaultService.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultValidator(),
	}
}

// Wrap implements [VaultServiceWrapper].
func (v *VaultValidationService) Wrap(inner VaultService) VaultService {
	v.inner = inner
	return v
}

func (v *VaultValidationService) GetVault(ctx context.Context, userID int64) (models.VaultRecord, error) {
	if userID <= 0 {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	return v.inner.GetVault(ctx, userID)
}

func (v *VaultValidationService) PutVault(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	if err := v.validator.Validate(ctx, record); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.PutVault(ctx, record)
}

func (v *VaultValidationService) DeleteVault(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	return v.inner.DeleteVault(ctx, userID)
}

func (v *VaultValidationService) InsertVersion(ctx context.Context, version models.VaultVersion) (models.VaultVersion, error) {
	if err := v.validator.Validate(ctx, version); err != nil {
		return models.VaultVersion{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.InsertVersion(ctx, version)
}

func (v *VaultValidationService) ListVersions(ctx context.Context, userID int64, limit int) ([]models.VersionInfo, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	return v.inner.ListVersions(ctx, userID, limit)
}

func (v *VaultValidationService) GetVersion(ctx context.Context, userID int64, createdAt time.Time) (models.VaultVersion, error) {
	probe := models.VaultVersion{UserID: userID, CreatedAt: createdAt}
	if err := v.validator.Validate(ctx, probe, validators.FieldUserID, validators.FieldCreatedAt); err != nil {
		return models.VaultVersion{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.GetVersion(ctx, userID, createdAt)
}

func (v *VaultValidationService) PruneVersions(ctx context.Context, userID int64, keep int) (int64, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	return v.inner.PruneVersions(ctx, userID, keep)
}
