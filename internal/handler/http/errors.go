// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Authorization header errors. The auth middleware writes their text as
// the 401 body; the client treats any of them as "sign in again".
var (
	ErrEmptyAuthorizationHeader   = errors.New("empty `Authorization` header")
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
	// ErrUnsupportedAuthScheme: only bearer tokens issued by /api/user/login
	// are accepted.
	ErrUnsupportedAuthScheme = errors.New("unsupported `Authorization` scheme")
	ErrEmptyToken            = errors.New("empty token in `Authorization` header")
)
