package validators

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentagon14032008-ux/Life-OS/internal/crypto"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validBlob(t *testing.T) string {
	t.Helper()
	s, err := crypto.EncodeBlob(models.EncryptedBlob{
		V: 1, Iters: 1000, SaltB64: "c2FsdA==", IVB64: "aXY=", CtB64: "Y3Q=",
	})
	require.NoError(t, err)
	return s
}

func validRecord(t *testing.T) models.VaultRecord {
	h := strings.Repeat("ab", 32)
	return models.VaultRecord{
		UserID:     1,
		Blob:       validBlob(t),
		Meta:       models.VaultMeta{UpdatedAt: 1700000000000, Schema: 2, LastEventHash: &h},
		AppVersion: "1.0.0",
		DeviceID:   "0190f5a4-6d2f-7c3e-8a55-2b1c9d1e0f11",
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestVaultValidator_Dispatch(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	rec := validRecord(t)
	assert.NoError(t, v.Validate(ctx, rec))
	assert.NoError(t, v.Validate(ctx, &rec))

	ver := models.VaultVersion{UserID: 1, Blob: rec.Blob, Meta: rec.Meta, AppVersion: "1.0.0"}
	assert.NoError(t, v.Validate(ctx, ver))
	assert.NoError(t, v.Validate(ctx, &ver))

	dev := models.Device{UserID: 1, DeviceID: rec.DeviceID, Label: "laptop"}
	assert.NoError(t, v.Validate(ctx, dev))
	assert.NoError(t, v.Validate(ctx, &dev))

	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
}

// ---------------------------------------------------------------------------
// VaultRecord
// ---------------------------------------------------------------------------

func TestVaultValidator_Record(t *testing.T) {
	notHex := strings.Repeat("zz", 32)
	short := "abc"

	tests := []struct {
		name   string
		mutate func(r *models.VaultRecord)
		fields []string
		want   error
	}{
		{"no user", func(r *models.VaultRecord) { r.UserID = 0 }, nil, ErrInvalidUserID},
		{"empty blob", func(r *models.VaultRecord) { r.Blob = "" }, nil, ErrEmptyBlob},
		{"blob not base64", func(r *models.VaultRecord) { r.Blob = "%%%" }, nil, ErrInvalidBlob},
		{"blob not a container", func(r *models.VaultRecord) {
			r.Blob = base64.StdEncoding.EncodeToString([]byte(`{"v":2}`))
		}, nil, ErrInvalidBlob},
		{"zero updatedAt", func(r *models.VaultRecord) { r.Meta.UpdatedAt = 0 }, nil, ErrInvalidMeta},
		{"zero schema", func(r *models.VaultRecord) { r.Meta.Schema = 0 }, nil, ErrInvalidMeta},
		{"short hash", func(r *models.VaultRecord) { r.Meta.LastEventHash = &short }, nil, ErrInvalidMeta},
		{"non hex hash", func(r *models.VaultRecord) { r.Meta.LastEventHash = &notHex }, nil, ErrInvalidMeta},
		{"nil hash ok", func(r *models.VaultRecord) { r.Meta.LastEventHash = nil }, nil, nil},
		{"no app version", func(r *models.VaultRecord) { r.AppVersion = "" }, nil, ErrEmptyAppVersion},
		{"device id checked on demand", func(r *models.VaultRecord) { r.DeviceID = "x" }, []string{FieldDeviceID}, ErrInvalidDeviceID},
		{"device id ignored by default", func(r *models.VaultRecord) { r.DeviceID = "x" }, nil, nil},
		{"unknown field", func(r *models.VaultRecord) {}, []string{"nope"}, ErrUnknownField},
	}

	v := NewVaultValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord(t)
			tt.mutate(&rec)

			err := v.Validate(context.Background(), rec, tt.fields...)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// VaultVersion
// ---------------------------------------------------------------------------

func TestVaultValidator_Version(t *testing.T) {
	v := NewVaultValidator()
	rec := validRecord(t)

	ver := models.VaultVersion{UserID: 1, Blob: rec.Blob, Meta: rec.Meta, AppVersion: "1.0.0"}
	assert.ErrorIs(t, v.Validate(context.Background(), ver, FieldCreatedAt), ErrInvalidCreatedAt)

	ver.CreatedAt = time.Now()
	assert.NoError(t, v.Validate(context.Background(), ver, FieldCreatedAt))

	ver.UserID = -1
	assert.ErrorIs(t, v.Validate(context.Background(), ver), ErrInvalidUserID)
}

// ---------------------------------------------------------------------------
// Device
// ---------------------------------------------------------------------------

func TestVaultValidator_Device(t *testing.T) {
	v := NewVaultValidator()
	base := models.Device{UserID: 1, DeviceID: "0190f5a4-6d2f-7c3e-8a55-2b1c9d1e0f11"}

	bad := base
	bad.DeviceID = "not-a-uuid"
	assert.ErrorIs(t, v.Validate(context.Background(), bad), ErrInvalidDeviceID)

	long := base
	long.Platform = strings.Repeat("x", MaxLabelLength+1)
	assert.ErrorIs(t, v.Validate(context.Background(), long), ErrInvalidLabel)

	// only the id is checked when asked
	assert.NoError(t, v.Validate(context.Background(), long, FieldDeviceID))
}
