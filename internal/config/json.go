package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the optional JSON config file.
type StructuredJSONConfig struct {
	App struct {
		PasswordHashKey string   `json:"password_hash_key"`
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		HashKey         string   `json:"hash_key"`
		LogLevel        string   `json:"log_level"`
		LogPath         string   `json:"log_path"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
		Local struct {
			Path string `json:"path"`
		} `json:"local"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RateLimit      float64  `json:"rate_limit"`
		RateBurst      int      `json:"rate_burst"`
		VersionKeep    int      `json:"version_keep"`
	} `json:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter"`

	Workers struct {
		PushDebounce      Duration `json:"push_debounce"`
		PollInterval      Duration `json:"poll_interval"`
		HeartbeatInterval Duration `json:"heartbeat_interval"`
		IdleLock          Duration `json:"idle_lock"`
	} `json:"workers"`

	Vault struct {
		Iterations       int    `json:"iterations"`
		VersionKeep      int    `json:"version_keep"`
		VersionListLimit int    `json:"version_list_limit"`
		AuditKeep        int    `json:"audit_keep"`
		DeviceLabel      string `json:"device_label"`
	} `json:"vault"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			PasswordHashKey: j.App.PasswordHashKey,
			TokenSignKey:    j.App.TokenSignKey,
			TokenIssuer:     j.App.TokenIssuer,
			TokenDuration:   time.Duration(j.App.TokenDuration),
			HashKey:         j.App.HashKey,
			LogLevel:        j.App.LogLevel,
			LogPath:         j.App.LogPath,
		},
		Storage: Storage{
			DB:    DB{DSN: j.Storage.DB.DSN},
			Local: Local{Path: j.Storage.Local.Path},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
			RateLimit:      j.Server.RateLimit,
			RateBurst:      j.Server.RateBurst,
			VersionKeep:    j.Server.VersionKeep,
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
		Workers: Workers{
			PushDebounce:      time.Duration(j.Workers.PushDebounce),
			PollInterval:      time.Duration(j.Workers.PollInterval),
			HeartbeatInterval: time.Duration(j.Workers.HeartbeatInterval),
			IdleLock:          time.Duration(j.Workers.IdleLock),
		},
		Vault: Vault{
			Iterations:       j.Vault.Iterations,
			VersionKeep:      j.Vault.VersionKeep,
			VersionListLimit: j.Vault.VersionListLimit,
			AuditKeep:        j.Vault.AuditKeep,
			DeviceLabel:      j.Vault.DeviceLabel,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
