package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error

	args       []string
	ssmFetcher ssmFetcher
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 5),
		args:    os.Args[1:],
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flagsCfg, err := parseFlags(b.args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagsCfg)
	return b
}

func (b *configBuilder) withFile() *configBuilder {
	path := b.lookup(func(cfg *StructuredConfig) string { return cfg.FilePath })
	if path == "" {
		return b
	}

	fileCfg, err := parseFile(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, fileCfg)
	return b
}

func (b *configBuilder) withSSM(ctx context.Context) *configBuilder {
	name := b.lookup(func(cfg *StructuredConfig) string { return cfg.SSMParameter })
	if name == "" {
		return b
	}

	fetcher := b.ssmFetcher
	if fetcher == nil {
		region := b.lookup(func(cfg *StructuredConfig) string { return cfg.AWS.Region })
		fetcher = newSSMFetcher(region)
	}

	ssmCfg, err := parseSSM(ctx, fetcher, name)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, ssmCfg)
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

// lookup returns the first non-empty value of field among collected configs.
func (b *configBuilder) lookup(field func(*StructuredConfig) string) string {
	for _, cfg := range b.configs {
		if v := field(cfg); v != "" {
			return v
		}
	}
	return ""
}
