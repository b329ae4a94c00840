package config

import "fmt"

// The client reads the same sections as the server for its transport,
// scheduler and vault settings.
type (
	ClientAdapter = Adapter
	ClientWorkers = Workers
	ClientVault   = Vault
)

// ClientApp is the part of [App] the client may see. Server secrets such
// as the token sign key never reach it.
type ClientApp struct {
	HashKey  string
	LogLevel string
	LogPath  string
}

// ClientDB points at the local SQLite file.
type ClientDB struct {
	DSN string
}

type ClientStorage struct {
	DB ClientDB
}

// ClientConfig is what cmd/client runs with.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Vault   ClientVault
}

// GetClientConfig merges every source and validates the client view.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.ClientView()
	if err = clientCfg.validate(); err != nil {
		return nil, err
	}
	return clientCfg, nil
}

// ClientView copies the client-relevant fields. The local cache path
// becomes the client DB DSN.
func (cfg *StructuredConfig) ClientView() *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			HashKey:  cfg.App.HashKey,
			LogLevel: cfg.App.LogLevel,
			LogPath:  cfg.App.LogPath,
		},
		Adapter: cfg.Adapter,
		Storage: ClientStorage{DB: ClientDB{DSN: cfg.Storage.Local.Path}},
		Workers: cfg.Workers,
		Vault:   cfg.Vault,
	}
}
