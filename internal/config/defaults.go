package config

import "time"

// Defaults used when no source sets a value.
const (
	DefaultHTTPAddress       = "localhost:8080"
	DefaultGRPCAddress       = "localhost:9090"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultTokenDuration     = 24 * time.Hour
	DefaultTokenIssuer       = "life-os"
	DefaultRateLimit         = 10
	DefaultRateBurst         = 20
	DefaultLocalPath         = "life-os.db"
	DefaultPushDebounce      = 1500 * time.Millisecond
	DefaultPollInterval      = 10 * time.Minute
	DefaultHeartbeatInterval = 5 * time.Minute
	DefaultIdleLock          = 10 * time.Minute
	DefaultIterations        = 210000
	DefaultVersionKeep       = 20
	DefaultVersionListLimit  = 10
	DefaultLogLevel          = "info"
	DefaultDBMaxOpenConns    = 10
	DefaultDBMaxIdleConns    = 4
	DefaultDBConnLifetime    = 30 * time.Minute
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			LogLevel:      DefaultLogLevel,
		},
		Storage: Storage{
			Local: Local{Path: DefaultLocalPath},
			DB: DB{
				MaxOpenConns:    DefaultDBMaxOpenConns,
				MaxIdleConns:    DefaultDBMaxIdleConns,
				ConnMaxLifetime: DefaultDBConnLifetime,
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			GRPCAddress:    DefaultGRPCAddress,
			RequestTimeout: DefaultRequestTimeout,
			RateLimit:      DefaultRateLimit,
			RateBurst:      DefaultRateBurst,
			VersionKeep:    DefaultVersionKeep,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			PushDebounce:      DefaultPushDebounce,
			PollInterval:      DefaultPollInterval,
			HeartbeatInterval: DefaultHeartbeatInterval,
			IdleLock:          DefaultIdleLock,
		},
		Vault: Vault{
			Iterations:       DefaultIterations,
			VersionKeep:      DefaultVersionKeep,
			VersionListLimit: DefaultVersionListLimit,
		},
	}
}
