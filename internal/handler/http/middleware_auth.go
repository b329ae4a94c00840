package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pentagon14032008-ux/Life-OS/internal/app"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
)

// deviceIDHeader carries the id of the calling installation.
const deviceIDHeader = "X-Device-ID"

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It takes the bearer token from the "Authorization" header, validates it via
// [service.AuthService.ParseToken] and stores the account id in the request
// context with [utils.WithUserID]. The X-Device-ID header, when present,
// is stored with [utils.WithDeviceID].
//
// Requests are rejected with 401 when the header is missing or malformed,
// or when the token is expired or invalid. The body is one of the
// [app.MsgTokenIsExpired] / [app.MsgTokenIsExpiredOrInvalid] wire messages
// or the header parsing error.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpired):
				log.Err(err).Msg("token expired")
				http.Error(w, app.MsgTokenIsExpired, http.StatusUnauthorized)
			default:
				log.Err(err).Msg("error occurred during parsing token")
				http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			}
			return
		}

		ctx = utils.WithUserID(ctx, token.UserID)
		ctx = utils.WithDeviceID(ctx, strings.TrimSpace(r.Header.Get(deviceIDHeader)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// deviceGuard runs after auth on vault routes. It requires X-Device-ID and
// answers 403 [app.MsgDeviceRevoked] for a revoked installation. A device
// the server has never seen passes: it registers itself on first run.
func (h *Handler) deviceGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		deviceID, found := utils.GetDeviceIDFromContext(ctx)
		if !found {
			log.Warn().Int64("user_id", userID).Msg("vault request without device id")
			http.Error(w, app.MsgNoDeviceIDProvided, http.StatusBadRequest)
			return
		}

		if err := h.services.DeviceService.CheckDevice(ctx, userID, deviceID); err != nil {
			writeError(w, r, err, "*Handler.deviceGuard")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getTokenFromAuthHeader extracts the token from "Bearer <token>". The
// scheme is matched case-insensitively.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found {
		return "", ErrInvalidAuthorizationHeader
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return "", ErrUnsupportedAuthScheme
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}
