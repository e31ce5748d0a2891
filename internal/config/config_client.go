package config

import (
	"fmt"
	"time"
)

// DefaultClientDSN is the local store used when no DSN is configured.
const DefaultClientDSN = "trip-keeper.db"

// ClientApp holds client-side application settings.
type ClientApp struct {
	// HashKey signs request bodies with the HashSHA256 header when set.
	HashKey  string
	LogLevel string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	HTTPAddress    string
	GRPCAddress    string
	RequestTimeout time.Duration
}

// ClientDB contains the local SQLite settings.
type ClientDB struct {
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers configures the connectivity observer and the sync orchestrator.
type ClientWorkers struct {
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
	SyncTimeout   time.Duration
	// MaxRetries caps replays of a queued operation; negative means no cap.
	MaxRetries int
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	dsn := cfg.Storage.DB.DSN
	if dsn == "" {
		dsn = DefaultClientDSN
	}

	return &ClientConfig{
		App: ClientApp{
			HashKey:  cfg.App.HashKey,
			LogLevel: cfg.App.LogLevel,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			GRPCAddress:    cfg.Adapter.GRPCAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: dsn},
		},
		Workers: ClientWorkers{
			ProbeInterval: cfg.Workers.ProbeInterval,
			ProbeTimeout:  cfg.Workers.ProbeTimeout,
			SyncTimeout:   cfg.Workers.SyncTimeout,
			MaxRetries:    cfg.Workers.MaxRetries,
		},
	}
}
