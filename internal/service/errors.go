package service

import (
	"errors"

	"github.com/pentagon14032008-ux/Life-OS/internal/audit"
	"github.com/pentagon14032008-ux/Life-OS/internal/crypto"
)

// Server-side errors.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrDeviceRevoked   = errors.New("device revoked")
	ErrInvalidBodyHash = errors.New("body hash mismatch")
)

// Client-side vault and sync errors. Crypto and chain failures keep their
// package sentinels so that errors.Is works across layers.
var (
	// ErrAuthentication: wrong passphrase or tampered ciphertext.
	ErrAuthentication = crypto.ErrAuthentication

	// ErrChainBroken: the audit chain failed verification.
	ErrChainBroken = audit.ErrChainBroken

	// ErrVaultLocked is returned by operations that need the passphrase
	// while none is held.
	ErrVaultLocked = errors.New("vault is locked")

	// ErrNetwork means the server could not be reached. Background sync
	// reports it as the Offline status.
	ErrNetwork = errors.New("network unavailable")

	// ErrSignatureMismatch: the export file signature does not match its
	// meta and vault.
	ErrSignatureMismatch = errors.New("export signature mismatch")

	// ErrInvalidExport: the export file is structurally invalid.
	ErrInvalidExport = errors.New("invalid export file")

	// ErrConflictPending: a conflict awaits explicit resolution.
	ErrConflictPending = errors.New("sync conflict pending")

	// ErrRestricted: the local chain is broken and the operation is blocked
	// until a verified state replaces it.
	ErrRestricted = errors.New("restricted mode: audit chain is broken")

	// ErrStaleSnapshot: the local snapshot changed between reading it and
	// committing a state derived from it.
	ErrStaleSnapshot = errors.New("local snapshot changed concurrently")

	ErrNotLoggedIn     = errors.New("not logged in")
	ErrNoRemoteVault   = errors.New("no remote vault")
	ErrNoConflict      = errors.New("no conflict to resolve")
	ErrNotFound        = errors.New("not found")
	ErrAccessDenied    = errors.New("access denied")
	ErrTooManyRequests = errors.New("too many requests")

	ErrTaskNotFound     = errors.New("task not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrEmptyTitle       = errors.New("title is required")
)
