package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pentagon14032008-ux/Life-OS/internal/app"
	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/internal/validators"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

func sampleRecord() models.VaultRecord {
	hash := "ab12"
	return models.VaultRecord{
		Blob:       "eyJ2IjoxfQ==",
		Meta:       models.VaultMeta{UpdatedAt: 1700000000000, Schema: 1, LastEventHash: &hash},
		AppVersion: "1.4.0",
		DeviceID:   "spoofed-device",
	}
}

// ── getVault ──

func TestGetVault(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h, m := newMockedHandler(t, config.Server{})
		record := sampleRecord()
		m.vault.EXPECT().GetVault(gomock.Any(), int64(3)).Return(record, nil)

		rec := httptest.NewRecorder()
		h.getVault(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/vault", nil), 3, "dev-1"))

		require.Equal(t, http.StatusOK, rec.Code)
		var got models.VaultRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, record.Blob, got.Blob)
		assert.Equal(t, record.Meta.UpdatedAt, got.Meta.UpdatedAt)
	})

	t.Run("not found", func(t *testing.T) {
		h, m := newMockedHandler(t, config.Server{})
		m.vault.EXPECT().GetVault(gomock.Any(), int64(3)).
			Return(models.VaultRecord{}, fmt.Errorf("get: %w", store.ErrVaultNotFound))

		rec := httptest.NewRecorder()
		h.getVault(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/vault", nil), 3, "dev-1"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, app.MsgVaultNotFound, strings.TrimSpace(rec.Body.String()))
	})

	t.Run("no user in context", func(t *testing.T) {
		h, _ := newMockedHandler(t, config.Server{})

		rec := httptest.NewRecorder()
		h.getVault(rec, httptest.NewRequest(http.MethodGet, "/api/vault", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, app.MsgNoUserIDProvided, strings.TrimSpace(rec.Body.String()))
	})
}

// ── putVault ──

func TestPutVault_StampsAccountAndDevice(t *testing.T) {
	h, m := newMockedHandler(t, config.Server{})

	m.vault.EXPECT().PutVault(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, r models.VaultRecord) (models.VaultRecord, error) {
			assert.Equal(t, int64(5), r.UserID)
			assert.Equal(t, "dev-real", r.DeviceID, "device comes from the header, not the body")
			r.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
			return r, nil
		})

	body, err := json.Marshal(models.VaultUploadRequest{Record: sampleRecord(), Hash: "checked-upstream"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := asUser(httptest.NewRequest(http.MethodPut, "/api/vault", strings.NewReader(string(body))), 5, "dev-real")
	h.putVault(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.VaultRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "dev-real", got.DeviceID)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestPutVault_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{"bad json", "{", nil, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"empty blob", `{"record":{"blob":""},"hash":"x"}`, validators.ErrEmptyBlob, http.StatusBadRequest, app.MsgInvalidBlob},
		{"no app version", `{"record":{"blob":"YQ=="},"hash":"x"}`, fmt.Errorf("validate: %w", validators.ErrInvalidBlob), http.StatusBadRequest, app.MsgInvalidBlob},
		{"store failure", `{"record":{"blob":"YQ=="},"hash":"x"}`, errors.New("disk full"), http.StatusInternalServerError, app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t, config.Server{})
			if tt.serviceErr != nil {
				m.vault.EXPECT().PutVault(gomock.Any(), gomock.Any()).Return(models.VaultRecord{}, tt.serviceErr)
			}

			rec := httptest.NewRecorder()
			h.putVault(rec, asUser(httptest.NewRequest(http.MethodPut, "/api/vault", strings.NewReader(tt.body)), 1, "d"))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}

// ── deleteVault ──

func TestDeleteVault(t *testing.T) {
	h, m := newMockedHandler(t, config.Server{})
	m.vault.EXPECT().DeleteVault(gomock.Any(), int64(8)).Return(nil)

	rec := httptest.NewRecorder()
	h.deleteVault(rec, asUser(httptest.NewRequest(http.MethodDelete, "/api/vault", nil), 8, "d"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

// ── versions ──

func TestInsertVersion(t *testing.T) {
	h, m := newMockedHandler(t, config.Server{})
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 123000000, time.UTC)

	m.vault.EXPECT().InsertVersion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, v models.VaultVersion) (models.VaultVersion, error) {
			assert.Equal(t, int64(2), v.UserID)
			v.CreatedAt = createdAt
			return v, nil
		})

	body := `{"version":{"blob":"YQ==","meta":{"updatedAt":1,"schema":1,"lastEventHash":null},"appVersion":"1.0.0"},"hash":"x"}`
	rec := httptest.NewRecorder()
	h.insertVersion(rec, asUser(httptest.NewRequest(http.MethodPost, "/api/vault/versions", strings.NewReader(body)), 2, "d"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got models.VaultVersion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, createdAt.Equal(got.CreatedAt))
}

func TestListVersions(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		result     []models.VersionInfo
		wantStatus int
		wantLen    int
	}{
		{"default limit", "", 0, []models.VersionInfo{{AppVersion: "1"}, {AppVersion: "2"}}, http.StatusOK, 2},
		{"explicit limit", "?limit=1", 1, []models.VersionInfo{{AppVersion: "2"}}, http.StatusOK, 1},
		{"nil becomes empty list", "?limit=5", 5, nil, http.StatusOK, 0},
		{"negative limit", "?limit=-1", 0, nil, http.StatusBadRequest, 0},
		{"not a number", "?limit=ten", 0, nil, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t, config.Server{})
			if tt.wantStatus == http.StatusOK {
				m.vault.EXPECT().ListVersions(gomock.Any(), int64(4), tt.wantLimit).Return(tt.result, nil)
			}

			rec := httptest.NewRecorder()
			h.listVersions(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/vault/versions"+tt.query, nil), 4, "d"))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got models.VersionListResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantLen, got.Length)
			assert.NotNil(t, got.Versions)
			assert.Len(t, got.Versions, tt.wantLen)
		})
	}
}

func TestGetVersion(t *testing.T) {
	createdAt := time.Date(2026, 5, 6, 7, 8, 9, 987654321, time.UTC)
	escaped := url.PathEscape(createdAt.Format(time.RFC3339Nano))

	t.Run("found", func(t *testing.T) {
		h, m := newMockedHandler(t, config.Server{})
		m.vault.EXPECT().GetVersion(gomock.Any(), int64(1), gomock.Any()).
			DoAndReturn(func(_ any, _ int64, at time.Time) (models.VaultVersion, error) {
				assert.True(t, createdAt.Equal(at), "nanoseconds survive the path round trip")
				return models.VaultVersion{Blob: "YQ==", CreatedAt: at}, nil
			})

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/vault/versions/"+escaped, nil), "createdAt", escaped)
		rec := httptest.NewRecorder()
		h.getVersion(rec, asUser(req, 1, "d"))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		h, m := newMockedHandler(t, config.Server{})
		m.vault.EXPECT().GetVersion(gomock.Any(), int64(1), gomock.Any()).
			Return(models.VaultVersion{}, store.ErrVersionNotFound)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "createdAt", escaped)
		rec := httptest.NewRecorder()
		h.getVersion(rec, asUser(req, 1, "d"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, app.MsgVersionNotFound, strings.TrimSpace(rec.Body.String()))
	})

	t.Run("bad timestamp", func(t *testing.T) {
		h, _ := newMockedHandler(t, config.Server{})

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "createdAt", "yesterday")
		rec := httptest.NewRecorder()
		h.getVersion(rec, asUser(req, 1, "d"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, app.MsgInvalidDataProvided, strings.TrimSpace(rec.Body.String()))
	})
}

func TestPruneVersions(t *testing.T) {
	h, m := newMockedHandler(t, config.Server{})
	m.vault.EXPECT().PruneVersions(gomock.Any(), int64(6), 3).Return(int64(17), nil)

	rec := httptest.NewRecorder()
	h.pruneVersions(rec, asUser(httptest.NewRequest(http.MethodDelete, "/api/vault/versions?keep=3", nil), 6, "d"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":17}`, rec.Body.String())
}
