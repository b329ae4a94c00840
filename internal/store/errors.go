package store

import "errors"

// Not-found and conflict results. Handlers map them to 4xx answers, so
// repositories return them unwrapped or wrapped with %w.
var (
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrNoUserWasFound     = errors.New("no user was found")
	ErrVaultNotFound      = errors.New("vault was not found")
	ErrVersionNotFound    = errors.New("vault version was not found")
	ErrDeviceNotFound     = errors.New("device was not found")

	// client cache
	ErrLocalStateNotFound = errors.New("local state was not found")
	ErrKeyNotFound        = errors.New("key was not found")
)

// Driver failures, wrapped together with the driver error:
// fmt.Errorf("%w: %w", ErrExecutingStatement, err).
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrExecutingStatement   = errors.New("failed to executing statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)
