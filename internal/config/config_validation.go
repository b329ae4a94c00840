// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate rejects values no source may set, whatever the binary.
// Presence checks live in validateServer and [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.RateLimit < 0 || cfg.Server.RateBurst < 0 || cfg.Server.VersionKeep < 0 {
		return ErrInvalidServerConfigs
	}
	if cfg.Vault.Iterations < 0 || cfg.Vault.VersionKeep < 0 || cfg.Vault.AuditKeep < 0 {
		return ErrInvalidVaultConfigs
	}
	return nil
}

func (cfg *StructuredConfig) validateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if cfg.App.TokenSignKey == "" || cfg.App.PasswordHashKey == "" || cfg.App.HashKey == "" {
		return fmt.Errorf("%w: token sign key, password hash key and hash key are required", ErrInvalidAppConfigs)
	}
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	w := cfg.Workers
	if w.PushDebounce <= 0 || w.PollInterval <= 0 || w.HeartbeatInterval <= 0 || w.IdleLock <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Vault.Iterations <= 0 || cfg.Vault.VersionKeep <= 0 || cfg.Vault.VersionListLimit <= 0 {
		return ErrInvalidVaultConfigs
	}

	if cfg.App.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
