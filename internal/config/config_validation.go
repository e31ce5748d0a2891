// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks invariants shared by every binary.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenDuration < 0 || cfg.Server.RequestTimeout < 0 || cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidAppConfigs)
	}
	if cfg.Workers.ProbeInterval < 0 || cfg.Workers.SyncTimeout < 0 || cfg.Workers.ProbeTimeout < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidWorkerConfigs)
	}
	return nil
}

// ValidateServer checks the settings the server and the functions binary
// cannot start without.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Photos.Bucket == "" && cfg.Storage.Photos.Dir == "" {
		return fmt.Errorf("%w: neither photo bucket nor photo dir set", ErrInvalidStorageConfigs)
	}
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration == 0 {
		return fmt.Errorf("%w: token settings are incomplete", ErrInvalidAppConfigs)
	}
	if cfg.Storage.Photos.Bucket == "" && cfg.App.HashKey == "" {
		return fmt.Errorf("%w: local photo urls need a hash key", ErrInvalidAppConfigs)
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

	if cfg.Workers.ProbeInterval == 0 || cfg.Workers.SyncTimeout == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
