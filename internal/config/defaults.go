package config

import "time"

const (
	DefaultSyncTimeout   = 8 * time.Second
	DefaultProbeInterval = 5 * time.Second
	DefaultProbeTimeout  = 2 * time.Second
	DefaultMaxRetries    = 10
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "trip-keeper",
			TokenDuration: 24 * time.Hour,
		},
		Storage: Storage{
			Photos: Photos{
				Dir:    "data/photos",
				URLTTL: time.Hour,
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			GRPCAddress:    "localhost:9090",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			GRPCAddress:    "localhost:9090",
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			ProbeInterval: DefaultProbeInterval,
			ProbeTimeout:  DefaultProbeTimeout,
			SyncTimeout:   DefaultSyncTimeout,
			MaxRetries:    DefaultMaxRetries,
		},
		Mail: Mail{
			AppName: "Trip Keeper",
		},
	}
}
