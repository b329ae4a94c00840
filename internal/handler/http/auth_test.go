// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentagon14032008-ux/Life-OS/internal/app"
	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
	paramsFn       func(ctx context.Context, user models.User) (models.User, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) Params(ctx context.Context, user models.User) (models.User, error) {
	return m.paramsFn(ctx, user)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newHandlerWithAuth(t *testing.T, auth service.AuthService) *Handler {
	t.Helper()
	return NewHandler(&service.Services{AuthService: auth}, config.Server{}, logger.Nop())
}

func userBody(t *testing.T, u models.User) string {
	t.Helper()
	b, err := json.Marshal(u)
	require.NoError(t, err)
	return string(b)
}

func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}

var validUser = models.User{
	Login:          "alice",
	AuthHash:       "bm90LWEtcmVhbC1oYXNo",
	EncryptionSalt: "c2FsdHNhbHRzYWx0c2FsdA==",
}

func tokenOK(_ context.Context, u models.User) (models.Token, error) {
	return stubToken(fmt.Sprintf("signed.jwt.%d", u.UserID)), nil
}

// ─────────────────────────────────────────────
// register / login: success
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, validUser.AuthHash, u.AuthHash)
			u.UserID = 7
			return u, nil
		},
		createTokenFn: tokenOK,
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(userBody(t, validUser)))
	newHandlerWithAuth(t, auth).register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.7", rec.Header().Get("Authorization"))
}

func TestLogin_Success(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, u models.User) (models.User, error) {
			return models.User{UserID: 42, Login: u.Login}, nil
		},
		createTokenFn: tokenOK,
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(userBody(t, validUser)))
	newHandlerWithAuth(t, auth).login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.42", rec.Header().Get("Authorization"))
	assert.Empty(t, rec.Body.String(), "login returns the token in the header only")
}

// ─────────────────────────────────────────────
// register / login: errors carry wire messages
// ─────────────────────────────────────────────

func TestAuthHandlers_ErrorTable(t *testing.T) {
	tests := []struct {
		name       string
		call       string
		body       string
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{"register invalid JSON", "register", "{invalid json}", nil, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"register empty body", "register", "", nil, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"register invalid data", "register", "", service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"register login taken", "register", "", store.ErrLoginAlreadyExists, http.StatusConflict, app.MsgLoginAlreadyExists},
		{"register wrapped login taken", "register", "", fmt.Errorf("user creation ended with error: %w", store.ErrLoginAlreadyExists), http.StatusConflict, app.MsgLoginAlreadyExists},
		{"register unexpected", "register", "", errors.New("db connection lost"), http.StatusInternalServerError, app.MsgInternalServerError},

		{"login invalid JSON", "login", "{", nil, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"login unknown user", "login", "", fmt.Errorf("user search by login failed: %w", store.ErrNoUserWasFound), http.StatusUnauthorized, app.MsgInvalidLoginPassword},
		{"login wrong password", "login", "", service.ErrWrongPassword, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
		{"login unexpected", "login", "", errors.New("timeout"), http.StatusInternalServerError, app.MsgInternalServerError},

		{"params unknown user", "params", "", store.ErrNoUserWasFound, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
		{"params no login", "params", "", service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fail := func(context.Context, models.User) (models.User, error) {
				return models.User{}, tt.serviceErr
			}
			h := newHandlerWithAuth(t, &mockAuthService{registerUserFn: fail, loginFn: fail, paramsFn: fail})

			body := tt.body
			if body == "" && tt.serviceErr != nil {
				body = userBody(t, validUser)
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/auth/"+tt.call, strings.NewReader(body))
			switch tt.call {
			case "register":
				h.register(rec, req)
			case "login":
				h.login(rec, req)
			case "params":
				h.params(rec, req)
			}

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
			assert.Empty(t, rec.Header().Get("Authorization"))
		})
	}
}

// Ошибка подписи токена отдаётся как 502 с сообщением шага.
func TestAuthHandlers_CreateTokenFails(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, u models.User) (models.User, error) { return u, nil },
		loginFn:        func(_ context.Context, u models.User) (models.User, error) { return u, nil },
		createTokenFn: func(context.Context, models.User) (models.Token, error) {
			return models.Token{}, service.ErrTokenCreationFailed
		},
	}
	h := newHandlerWithAuth(t, auth)

	rec := httptest.NewRecorder()
	h.register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(userBody(t, validUser))))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, app.MsgRegistrationFailed, strings.TrimSpace(rec.Body.String()))

	rec = httptest.NewRecorder()
	h.login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(userBody(t, validUser))))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, app.MsgLoginFailed, strings.TrimSpace(rec.Body.String()))
}

// ─────────────────────────────────────────────
// params
// ─────────────────────────────────────────────

func TestParams_ReturnsOnlySalt(t *testing.T) {
	auth := &mockAuthService{
		paramsFn: func(_ context.Context, u models.User) (models.User, error) {
			return models.User{UserID: 9, Login: u.Login, EncryptionSalt: "c2FsdA==", AuthHash: "secret"}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/params", strings.NewReader(`{"login":"alice"}`))
	newHandlerWithAuth(t, auth).params(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"login":"alice","encryption_salt":"c2FsdA==","created_at":"0001-01-01T00:00:00Z"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret")
}
