// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the plain-text messages the vault server writes into
// error responses. The client compares response bodies with the same
// constants, so changing a string is a protocol change.
package app

// 400
const (
	MsgInvalidDataProvided = "invalid data provided"
	MsgNoDeviceIDProvided  = "no device ID provided"
	// MsgInvalidHash: the HMAC sent next to an upload does not match it.
	MsgInvalidHash = "body hash mismatch"
	// MsgInvalidBlob: the upload is not a well-formed encrypted vault.
	MsgInvalidBlob = "invalid vault blob"
)

// 401
const (
	// MsgInvalidLoginPassword covers both an unknown login and a wrong
	// auth hash.
	MsgInvalidLoginPassword    = "invalid login/password"
	MsgTokenIsExpired          = "token is expired"
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"
	MsgNoUserIDProvided        = "no user ID provided"
)

// 403 and 404
const (
	MsgDeviceRevoked   = "device revoked"
	MsgAccessDenied    = "access denied"
	MsgDeviceNotFound  = "device not found"
	MsgVaultNotFound   = "vault not found"
	MsgVersionNotFound = "version not found"
)

// 409, 429 and 5xx
const (
	MsgLoginAlreadyExists  = "login already exists"
	MsgTooManyRequests     = "too many requests"
	MsgInternalServerError = "internal server error"
	MsgRegistrationFailed  = "registration failed"
	MsgLoginFailed         = "login failed"
)
