package validators

import (
	"context"
	"encoding/hex"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pentagon14032008-ux/Life-OS/internal/crypto"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUserID     = "user_id"
	FieldBlob       = "blob"
	FieldMeta       = "meta"
	FieldAppVersion = "app_version"
	FieldDeviceID   = "device_id"
	FieldLabel      = "label"
	FieldCreatedAt  = "created_at"
)

// MaxLabelLength bounds device labels, platform and user agent strings.
const MaxLabelLength = 128

// VaultValidator implements [Validator] for the rows the server stores:
// [models.VaultRecord], [models.VaultVersion] and [models.Device].
//
// The server never sees plaintext, so a blob is only checked to be a
// well-formed encrypted container.
type VaultValidator struct {
}

func NewVaultValidator() Validator {
	return &VaultValidator{}
}

func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultRecord:
		return v.validateRecord(ctx, value, fields...)
	case *models.VaultRecord:
		return v.validateRecord(ctx, *value, fields...)

	case models.VaultVersion:
		return v.validateVersion(ctx, value, fields...)
	case *models.VaultVersion:
		return v.validateVersion(ctx, *value, fields...)

	case models.Device:
		return v.validateDevice(ctx, value, fields...)
	case *models.Device:
		return v.validateDevice(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultValidator) validateRecord(ctx context.Context, record models.VaultRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldBlob, FieldMeta, FieldAppVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if record.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldBlob:
			if err := validateBlob(record.Blob); err != nil {
				return err
			}
		case FieldMeta:
			if !validMeta(record.Meta) {
				return ErrInvalidMeta
			}
		case FieldAppVersion:
			if record.AppVersion == "" {
				return ErrEmptyAppVersion
			}
		case FieldDeviceID:
			if _, err := uuid.Parse(record.DeviceID); err != nil {
				return ErrInvalidDeviceID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateVersion(ctx context.Context, version models.VaultVersion, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldBlob, FieldMeta, FieldAppVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if version.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldBlob:
			if err := validateBlob(version.Blob); err != nil {
				return err
			}
		case FieldMeta:
			if !validMeta(version.Meta) {
				return ErrInvalidMeta
			}
		case FieldAppVersion:
			if version.AppVersion == "" {
				return ErrEmptyAppVersion
			}
		case FieldCreatedAt:
			if version.CreatedAt.IsZero() {
				return ErrInvalidCreatedAt
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateDevice(ctx context.Context, device models.Device, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldDeviceID, FieldLabel}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if device.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldDeviceID:
			if _, err := uuid.Parse(device.DeviceID); err != nil {
				return ErrInvalidDeviceID
			}
		case FieldLabel:
			for _, s := range []string{device.Label, device.Platform, device.UserAgent} {
				if utf8.RuneCountInString(s) > MaxLabelLength {
					return ErrInvalidLabel
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateBlob(blob string) error {
	if blob == "" {
		return ErrEmptyBlob
	}
	decoded, err := crypto.DecodeBlob(blob)
	if err != nil {
		return ErrInvalidBlob
	}
	if decoded.V != models.BlobVersion || decoded.Iters <= 0 ||
		decoded.SaltB64 == "" || decoded.IVB64 == "" || decoded.CtB64 == "" {
		return ErrInvalidBlob
	}
	return nil
}

func validMeta(meta models.VaultMeta) bool {
	if meta.UpdatedAt <= 0 || meta.Schema <= 0 {
		return false
	}
	if meta.LastEventHash != nil {
		h := *meta.LastEventHash
		if len(h) != 64 {
			return false
		}
		if _, err := hex.DecodeString(h); err != nil {
			return false
		}
	}
	return true
}
