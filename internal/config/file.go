package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk layout shared by JSON files, YAML files and the
// SSM parameter.
type fileConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" yaml:"token_duration"`
		HashKey       string   `json:"hash_key" yaml:"hash_key"`
		Version       string   `json:"version" yaml:"version"`
		LogLevel      string   `json:"log_level" yaml:"log_level"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
		Photos struct {
			Bucket    string   `json:"bucket" yaml:"bucket"`
			Prefix    string   `json:"prefix" yaml:"prefix"`
			Dir       string   `json:"dir" yaml:"dir"`
			URLTTL    Duration `json:"url_ttl" yaml:"url_ttl"`
			PublicURL string   `json:"public_url" yaml:"public_url"`
		} `json:"photos" yaml:"photos"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		GRPCAddress    string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		GRPCAddress    string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter" yaml:"adapter"`

	Workers struct {
		ProbeInterval Duration `json:"probe_interval" yaml:"probe_interval"`
		ProbeTimeout  Duration `json:"probe_timeout" yaml:"probe_timeout"`
		SyncTimeout   Duration `json:"sync_timeout" yaml:"sync_timeout"`
		MaxRetries    int      `json:"max_retries" yaml:"max_retries"`
	} `json:"workers" yaml:"workers"`

	Mail struct {
		Sender  string `json:"sender" yaml:"sender"`
		AppName string `json:"app_name" yaml:"app_name"`
	} `json:"mail" yaml:"mail"`

	AWS struct {
		Region   string `json:"region" yaml:"region"`
		Endpoint string `json:"endpoint_url" yaml:"endpoint_url"`
	} `json:"aws" yaml:"aws"`
}

func parseFile(path string) (*StructuredConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(f, &fc)
	default:
		err = json.NewDecoder(f).Decode(&fc)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	return fc.toStructured(), nil
}

func decodeYAML(r io.Reader, fc *fileConfig) error {
	err := yaml.NewDecoder(r).Decode(fc)
	if err == io.EOF {
		return nil
	}
	return err
}

func (fc fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:  fc.App.TokenSignKey,
			TokenIssuer:   fc.App.TokenIssuer,
			TokenDuration: time.Duration(fc.App.TokenDuration),
			HashKey:       fc.App.HashKey,
			Version:       fc.App.Version,
			LogLevel:      fc.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{DSN: fc.Storage.DB.DSN},
			Photos: Photos{
				Bucket:    fc.Storage.Photos.Bucket,
				Prefix:    fc.Storage.Photos.Prefix,
				Dir:       fc.Storage.Photos.Dir,
				URLTTL:    time.Duration(fc.Storage.Photos.URLTTL),
				PublicURL: fc.Storage.Photos.PublicURL,
			},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			GRPCAddress:    fc.Server.GRPCAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    fc.Adapter.HTTPAddress,
			GRPCAddress:    fc.Adapter.GRPCAddress,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
		},
		Workers: Workers{
			ProbeInterval: time.Duration(fc.Workers.ProbeInterval),
			ProbeTimeout:  time.Duration(fc.Workers.ProbeTimeout),
			SyncTimeout:   time.Duration(fc.Workers.SyncTimeout),
			MaxRetries:    fc.Workers.MaxRetries,
		},
		Mail: Mail{
			Sender:  fc.Mail.Sender,
			AppName: fc.Mail.AppName,
		},
		AWS: AWS{
			Region:   fc.AWS.Region,
			Endpoint: fc.AWS.Endpoint,
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" and from plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
	case nil:
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}

	tmp, err := time.ParseDuration(s)
	if err != nil {
		var n int64
		if numErr := node.Decode(&n); numErr != nil {
			return err
		}
		tmp = time.Duration(n)
	}
	*d = Duration(tmp)
	return nil
}
