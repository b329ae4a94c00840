// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pentagon14032008-ux/Life-OS/internal/adapter"
	"github.com/pentagon14032008-ux/Life-OS/internal/app"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
)

// adapterErrorRule maps one adapter error kind. A server message listed in
// byMessage wins over the fallback; a nil fallback keeps the original error.
type adapterErrorRule struct {
	kind      error
	byMessage map[string]error
	fallback  func(err error, msg string) error
}

var adapterErrorRules = []adapterErrorRule{
	{
		kind: adapter.ErrNetwork,
		fallback: func(err error, _ string) error {
			return fmt.Errorf("%w: %v", ErrNetwork, err)
		},
	},
	{
		kind:      adapter.ErrBadRequest,
		byMessage: map[string]error{app.MsgInvalidHash: ErrInvalidBodyHash},
		fallback: func(_ error, msg string) error {
			return fmt.Errorf("%w: %s", ErrInvalidDataProvided, msg)
		},
	},
	{
		kind: adapter.ErrUnauthorized,
		byMessage: map[string]error{
			app.MsgInvalidLoginPassword: ErrWrongPassword,
			app.MsgTokenIsExpired:       ErrTokenIsExpired,
		},
		fallback: always(ErrTokenIsExpiredOrInvalid),
	},
	{
		kind:      adapter.ErrForbidden,
		byMessage: map[string]error{app.MsgDeviceRevoked: ErrDeviceRevoked},
		fallback:  always(ErrAccessDenied),
	},
	{kind: adapter.ErrNotFound, fallback: always(ErrNotFound)},
	{
		kind:      adapter.ErrConflict,
		byMessage: map[string]error{app.MsgLoginAlreadyExists: store.ErrLoginAlreadyExists},
	},
	{kind: adapter.ErrTooManyRequests, fallback: always(ErrTooManyRequests)},
	{
		kind: adapter.ErrBadGateway,
		byMessage: map[string]error{
			app.MsgRegistrationFailed: ErrRegisterOnServer,
			app.MsgLoginFailed:        ErrLoginOnServer,
		},
		fallback: func(err error, _ string) error {
			return fmt.Errorf("%w: %v", ErrNetwork, err)
		},
	},
}

// mapAdapterError turns a transport error into the service error the TUI
// knows how to show. Unknown errors pass through.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	for _, rule := range adapterErrorRules {
		if !errors.Is(err, rule.kind) {
			continue
		}
		msg := extractBody(err)
		if mapped, ok := rule.byMessage[msg]; ok {
			return mapped
		}
		if rule.fallback != nil {
			return rule.fallback(err, msg)
		}
		return err
	}
	return err
}

func always(target error) func(error, string) error {
	return func(error, string) error { return target }
}

// extractBody returns the server message of err. Errors built without a
// [adapter.StatusError] fall back to the text after the first ": ".
func extractBody(err error) string {
	if body := adapter.ResponseBody(err); body != "" {
		return body
	}
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, ": "); ok {
		return after
	}
	return msg
}
