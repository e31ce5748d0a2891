// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// server, the client and the functions binary. It is populated by merging
// environment variables, command-line flags, an optional JSON/YAML file and
// an optional AWS SSM parameter.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`
	Adapter Adapter `envPrefix:"ADAPTER_"`
	Workers Workers `envPrefix:"WORKERS_"`
	Mail    Mail    `envPrefix:"MAIL_"`
	AWS     AWS     `envPrefix:"AWS_"`

	// FilePath is the optional path to a JSON or YAML configuration file,
	// chosen by extension.
	// Env: CONFIG, flags: -c / -config
	FilePath string `env:"CONFIG"`

	// SSMParameter names an AWS SSM parameter holding a YAML document with
	// the same layout as the configuration file.
	// Env: CONFIG_SSM_PARAMETER, flag: -ssm-parameter
	SSMParameter string `env:"CONFIG_SSM_PARAMETER"`
}

// App holds token and integrity settings.
type App struct {
	// TokenSignKey is the secret used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of an access token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key of the HashSHA256 body integrity header and of
	// signed local photo urls.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is reported by /api/version when no build version was linked in.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name; empty keeps debug.
	// Env: APP_LOG_LEVEL, flag: -log-level
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the persistence settings.
type Storage struct {
	DB     DB     `envPrefix:"DB_"`
	Photos Photos `envPrefix:"PHOTOS_"`
}

// DB holds the database connection settings. The server expects a
// PostgreSQL DSN, the client a SQLite file DSN.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Photos configures vehicle photo storage. When Bucket is set photos go to
// S3, otherwise to the local directory Dir.
type Photos struct {
	// Env: STORAGE_PHOTOS_BUCKET
	Bucket string `env:"BUCKET"`
	// Env: STORAGE_PHOTOS_PREFIX
	Prefix string `env:"PREFIX"`
	// Env: STORAGE_PHOTOS_DIR
	Dir string `env:"DIR"`
	// URLTTL is the lifetime of a signed download url.
	// Env: STORAGE_PHOTOS_URL_TTL
	URLTTL time.Duration `env:"URL_TTL"`
	// PublicURL is the externally visible base url of this server, used to
	// build signed local photo urls.
	// Env: STORAGE_PHOTOS_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`
}

// Server holds the inbound transport settings.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client's view of the backend.
type Adapter struct {
	// HTTPAddress is the backend base url; the scheme defaults to http.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// GRPCAddress is the change feed address in host:port form.
	// Env: ADAPTER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers configures the client background machinery.
type Workers struct {
	// ProbeInterval is how often the connectivity observer probes the backend.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
	// ProbeTimeout bounds a single probe dial.
	// Env: WORKERS_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`
	// SyncTimeout is the foreground phase of a sync cycle.
	// Env: WORKERS_SYNC_TIMEOUT
	SyncTimeout time.Duration `env:"SYNC_TIMEOUT"`
	// MaxRetries caps replays of a queued operation. Negative means no cap.
	// Env: WORKERS_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`
}

// Mail configures transactional mail.
type Mail struct {
	// Sender is the From address. Mail is only logged when it is empty.
	// Env: MAIL_SENDER
	Sender string `env:"SENDER"`
	// Env: MAIL_APP_NAME
	AppName string `env:"APP_NAME"`
}

// AWS holds settings shared by the S3, SES and SSM clients.
type AWS struct {
	// Env: AWS_REGION
	Region string `env:"REGION"`
	// Endpoint overrides the service endpoint (LocalStack, MinIO).
	// Env: AWS_ENDPOINT_URL
	Endpoint string `env:"ENDPOINT_URL"`
}

// GetStructuredConfig loads and merges the configuration. For each field the
// first non-zero value wins in this order: environment, flags, config file,
// SSM parameter, built-in defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withFile().
		withSSM(context.Background()).
		withDefaults().
		build()
}
