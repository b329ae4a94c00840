package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pentagon14032008-ux/Life-OS/internal/app"
	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// ---- auth ----

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		deviceID   string
		parseErr   error
		wantCalled bool
		wantStatus int
		wantBody   string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantBody: ErrEmptyAuthorizationHeader.Error()},
		{name: "no token part", header: "Bearer", wantStatus: http.StatusUnauthorized, wantBody: ErrInvalidAuthorizationHeader.Error()},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantBody: ErrEmptyToken.Error()},
		{name: "basic auth", header: "Basic YWxpY2U6cHc=", wantStatus: http.StatusUnauthorized, wantBody: ErrUnsupportedAuthScheme.Error()},
		{name: "expired", header: "Bearer t", parseErr: fmt.Errorf("parse: %w", service.ErrTokenIsExpired), wantStatus: http.StatusUnauthorized, wantBody: app.MsgTokenIsExpired},
		{name: "garbage", header: "Bearer t", parseErr: errors.New("signature is invalid"), wantStatus: http.StatusUnauthorized, wantBody: app.MsgTokenIsExpiredOrInvalid},
		{name: "valid", header: "Bearer t", wantCalled: true, wantStatus: http.StatusOK},
		{name: "valid with device", header: "Bearer t", deviceID: " dev-9 ", wantCalled: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t, config.Server{})
			if strings.HasPrefix(tt.header, "Bearer t") {
				m.auth.EXPECT().ParseToken(gomock.Any(), "t").Return(models.Token{UserID: 77}, tt.parseErr)
			}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				userID, ok := utils.GetUserIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, int64(77), userID)

				deviceID, found := utils.GetDeviceIDFromContext(r.Context())
				assert.Equal(t, tt.deviceID != "", found)
				assert.Equal(t, strings.TrimSpace(tt.deviceID), deviceID)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/vault", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.deviceID != "" {
				req.Header.Set(deviceIDHeader, tt.deviceID)
			}

			rec := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
			}
		})
	}
}

// ---- deviceGuard ----

func TestDeviceGuard(t *testing.T) {
	tests := []struct {
		name       string
		deviceID   string
		checkErr   error
		wantCalled bool
		wantStatus int
		wantBody   string
	}{
		{name: "missing device id", wantStatus: http.StatusBadRequest, wantBody: app.MsgNoDeviceIDProvided},
		{name: "revoked", deviceID: "d", checkErr: fmt.Errorf("check: %w", service.ErrDeviceRevoked), wantStatus: http.StatusForbidden, wantBody: app.MsgDeviceRevoked},
		{name: "unknown or active", deviceID: "d", wantCalled: true, wantStatus: http.StatusOK},
		{name: "store failure", deviceID: "d", checkErr: errors.New("conn reset"), wantStatus: http.StatusInternalServerError, wantBody: app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t, config.Server{})
			if tt.deviceID != "" {
				m.devices.EXPECT().CheckDevice(gomock.Any(), int64(3), tt.deviceID).Return(tt.checkErr)
			}

			called := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

			rec := httptest.NewRecorder()
			h.deviceGuard(next).ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/vault", nil), 3, tt.deviceID))

			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
			}
		})
	}
}

func TestDeviceGuard_RequiresUser(t *testing.T) {
	h, _ := newMockedHandler(t, config.Server{})

	rec := httptest.NewRecorder()
	h.deviceGuard(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---- getTokenFromAuthHeader ----

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"bearer abc.def.ghi", "abc.def.ghi", nil},
		{"Bearer   padded  ", "padded", nil},
		{"Bearer", "", ErrInvalidAuthorizationHeader},
		{"Bearer    ", "", ErrEmptyToken},
		{"Bearer \t", "", ErrEmptyToken},
		{"Token xyz", "", ErrUnsupportedAuthScheme},
		{"Basic YWxpY2U6cHc=", "", ErrUnsupportedAuthScheme},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
