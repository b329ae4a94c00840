package config

import "errors"

// Each section of the merged config has its own sentinel, so callers can
// tell which part of the setup to fix. Details are wrapped with %w.
var (
	ErrInvalidAppConfigs     = errors.New("invalid app configuration")
	ErrInvalidServerConfigs  = errors.New("invalid server configuration")
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	ErrInvalidWorkerConfigs  = errors.New("invalid worker configuration")
	ErrInvalidVaultConfigs   = errors.New("invalid vault configuration")
)
