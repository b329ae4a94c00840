// Package utils provides general-purpose helpers shared by the client and
// the server: typed context keys, SHA-256 digests and HMAC transport hashes,
// JSON request and response helpers, the resty HTTP client, JWT handling,
// UUIDv7 generation and the millisecond clock.
package utils

import (
	"context"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// Keys under which the auth middleware stores the caller. Prefer the
// With*/Get* helpers below over raw context.WithValue.
var (
	UserIDCtxKey   = contextKey("userID")
	DeviceIDCtxKey = contextKey("deviceID")
)

// WithUserID stores the authenticated account id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext returns the account id set by [WithUserID]. ok is
// false when the request was not authenticated.
//
//	userID, ok := utils.GetUserIDFromContext(ctx)
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// WithDeviceID stores the calling installation. An empty id leaves ctx
// unchanged.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	if deviceID == "" {
		return ctx
	}
	return context.WithValue(ctx, DeviceIDCtxKey, deviceID)
}

// GetDeviceIDFromContext returns the X-Device-ID of the request. ok is
// false when none was sent.
func GetDeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDCtxKey).(string)
	return deviceID, ok && deviceID != ""
}
