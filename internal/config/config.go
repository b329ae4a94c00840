// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// vault server and the terminal client. It is populated by merging values
// from environment variables, command-line flags, an optional JSON file and
// finally the built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as keys, token parameters
	// and the log level.
	App App `envPrefix:"APP_"`

	// Storage holds the server database and the client cache locations.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and rate limit settings of the
	// HTTP and gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the remote vault server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the client scheduler timings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Vault holds client-side vault, history and audit settings.
	Vault Vault `envPrefix:"VAULT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the server's PostgreSQL connection settings.
	DB DB `envPrefix:"DB_"`

	// Local holds the client's SQLite cache settings.
	Local Local `envPrefix:"LOCAL_"`
}

// App holds application-level configuration values that control security,
// token lifecycle and logging.
type App struct {
	// PasswordHashKey is the HMAC key applied to account auth hashes before
	// they are stored. Must be kept confidential.
	// Env: APP_PASSWORD_HASH_KEY
	PasswordHashKey string `env:"PASSWORD_HASH_KEY"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key protecting upload bodies in transit
	// (the "hash" field next to each upload). Shared by client and server.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogPath is where the client writes its log file.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health service.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit is the sustained number of vault requests per second
	// allowed for one account.
	// Env: SERVER_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`

	// RateBurst is the token bucket size of the per-account limiter.
	// Env: SERVER_RATE_BURST
	RateBurst int `env:"RATE_BURST"`

	// VersionKeep bounds the server-side history when a client asks to
	// prune without a count.
	// Env: SERVER_VERSION_KEEP
	VersionKeep int `env:"VERSION_KEEP"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns and MaxIdleConns size the connection pool.
	// Env: STORAGE_DB_MAX_OPEN_CONNS, STORAGE_DB_MAX_IDLE_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`
	MaxIdleConns int `env:"MAX_IDLE_CONNS"`

	// ConnMaxLifetime recycles pooled connections, zero keeps them forever.
	// Env: STORAGE_DB_CONN_MAX_LIFETIME
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME"`
}

// Local holds the client cache location.
type Local struct {
	// Path is the SQLite database file of the client.
	// Env: STORAGE_LOCAL_PATH
	Path string `env:"PATH"`
}

// Adapter holds the client's connection to the remote vault server.
type Adapter struct {
	// HTTPAddress is the base address of the vault server
	// ("host:port" or a full URL).
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the client sync scheduler timings.
type Workers struct {
	// PushDebounce coalesces rapid local mutations into one push.
	// Env: WORKERS_PUSH_DEBOUNCE
	PushDebounce time.Duration `env:"PUSH_DEBOUNCE"`

	// PollInterval is how often the remote vault is compared.
	// Env: WORKERS_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// HeartbeatInterval is how often the device touches last_seen.
	// Env: WORKERS_HEARTBEAT_INTERVAL
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL"`

	// IdleLock locks the vault after this much inactivity.
	// Env: WORKERS_IDLE_LOCK
	IdleLock time.Duration `env:"IDLE_LOCK"`
}

// Vault holds client-side settings of the encryption, history and audit
// layers.
type Vault struct {
	// Iterations is the PBKDF2 work factor for new blobs.
	// Env: VAULT_ITERATIONS
	Iterations int `env:"ITERATIONS"`

	// VersionKeep is how many remote snapshots survive a push.
	// Env: VAULT_VERSION_KEEP
	VersionKeep int `env:"VERSION_KEEP"`

	// VersionListLimit is the default size of the history listing.
	// Env: VAULT_VERSION_LIST_LIMIT
	VersionListLimit int `env:"VERSION_LIST_LIMIT"`

	// AuditKeep enables checkpoint compaction of the audit log when
	// positive: only the newest AuditKeep events are retained.
	// Env: VAULT_AUDIT_KEEP
	AuditKeep int `env:"AUDIT_KEEP"`

	// DeviceLabel is the human name this installation registers with.
	// Env: VAULT_DEVICE_LABEL
	DeviceLabel string `env:"DEVICE_LABEL"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (the first source that sets a
// field wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// GetServerConfig is [GetStructuredConfig] plus the checks the vault server
// needs before it can start.
func GetServerConfig() (*StructuredConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.validateServer()
}
