// Package registry provides canned Converter factories for well-known
// prefix authorities (OBO, Gene Ontology, Monarch, Bioregistry).
package registry

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/correlator-io/curies/internal/config"
)

// Config controls how canned converters fetch and cache their source data.
// Loaded from a YAML file, with environment variable overrides for the
// fields most likely to need per-deployment tuning.
type Config struct {
	//nolint:tagliatelle // snake_case is intentional for YAML config files
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	//nolint:tagliatelle
	RequestTimeout time.Duration `yaml:"request_timeout"`
	//nolint:tagliatelle
	CacheTTL time.Duration `yaml:"cache_ttl"`
	//nolint:tagliatelle
	OfflineOnly bool `yaml:"offline_only"`
}

// DefaultConfigPath is the default location for the registry configuration
// file, following the hidden-dotfile convention of other correlator-io
// tools.
const DefaultConfigPath = ".curies-registry.yaml"

// ConfigPathEnvVar names the environment variable carrying a custom config
// file path.
const ConfigPathEnvVar = "CURIES_REGISTRY_CONFIG_PATH"

const (
	defaultRequestsPerSecond = 2.0
	defaultRequestTimeout    = 10 * time.Second
	defaultCacheTTL          = 1 * time.Hour
)

// DefaultConfig returns the configuration used when no file and no
// environment overrides are present.
func DefaultConfig() *Config {
	return &Config{
		RequestsPerSecond: defaultRequestsPerSecond,
		RequestTimeout:    defaultRequestTimeout,
		CacheTTL:          defaultCacheTTL,
		OfflineOnly:       false,
	}
}

// LoadConfig loads registry configuration from a YAML file at path, then
// applies environment overrides. A missing or unreadable file is not an
// error: canned converters must work with zero configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is from trusted config source
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to read registry config file, using defaults",
				slog.String("path", path), slog.String("error", err.Error()))
		}

		applyEnvOverrides(cfg)

		return cfg, nil
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			slog.Warn("failed to parse registry config file, using defaults",
				slog.String("path", path), slog.String("error", err.Error()))

			cfg = DefaultConfig()
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadConfigFromEnv loads config from the path named by ConfigPathEnvVar,
// falling back to DefaultConfigPath.
func LoadConfigFromEnv() (*Config, error) {
	path := config.GetEnvStr(ConfigPathEnvVar, DefaultConfigPath)

	return LoadConfig(path)
}

func applyEnvOverrides(cfg *Config) {
	cfg.RequestsPerSecond = config.GetEnvFloat("CURIES_REGISTRY_RPS", cfg.RequestsPerSecond)
	cfg.RequestTimeout = config.GetEnvDuration("CURIES_REGISTRY_TIMEOUT", cfg.RequestTimeout)
	cfg.CacheTTL = config.GetEnvDuration("CURIES_REGISTRY_CACHE_TTL", cfg.CacheTTL)
	cfg.OfflineOnly = config.GetEnvBool("CURIES_REGISTRY_OFFLINE_ONLY", cfg.OfflineOnly)
}
