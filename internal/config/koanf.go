// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/rozgar/config.yaml",
	"/etc/rozgar/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			State:             "BIHAR",
			BatchSize:         10,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 2,
			RetryAttempts:     0,
			DefaultFinYear:    "2024-2025",
			SyncTimeout:       10 * time.Minute,
		},
		Database: DatabaseConfig{
			Driver:    DriverDuckDB,
			Path:      "/data/rozgar.duckdb",
			MaxMemory: "512MB",
			MaxConns:  10,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    5 * time.Minute, // cache-miss requests wait on a full sync
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
		},
		Refresh: RefreshConfig{
			Enabled:  true,
			Cron:     "0 3 1 1 *",
			Timezone: "Asia/Kolkata",
			FinYears: []string{"2024-2025"},
		},
		Seed: SeedConfig{
			FinYears:    []string{"2021-2022", "2022-2023", "2023-2024", "2024-2025"},
			Concurrency: 2,
		},
		Cache: CacheConfig{
			MetaTTL: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the Config from defaults, an optional YAML file and the
// environment, in that order, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", legacyEnvTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load legacy environment variables: %w", err)
	}
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths arrive as comma separated strings from the environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"refresh.fin_years",
	"seed.fin_years",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}
		parts := strings.Split(raw, ",")
		vals := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				vals = append(vals, p)
			}
		}
		if err := k.Set(path, vals); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"data_gov_api_base":            "upstream.base_url",
	"data_gov_api_key":             "upstream.api_key",
	"upstream_state":               "upstream.state",
	"upstream_batch_size":          "upstream.batch_size",
	"upstream_timeout":             "upstream.timeout",
	"upstream_requests_per_second": "upstream.requests_per_second",
	"upstream_retry_attempts":      "upstream.retry_attempts",
	"default_fin_year":             "upstream.default_fin_year",
	"upstream_sync_timeout":        "upstream.sync_timeout",

	"database_driver":    "database.driver",
	"duckdb_path":        "database.path",
	"duckdb_max_memory":  "database.max_memory",
	"duckdb_threads":     "database.threads",
	"database_url":       "database.url",
	"database_max_conns": "database.max_conns",

	"http_host":           "server.host",
	"port":                "server.port",
	"http_port":           "server.port",
	"http_read_timeout":   "server.read_timeout",
	"http_write_timeout":  "server.write_timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",
	"rate_limit_disabled": "server.rate_limit_disabled",

	"refresh_enabled":   "refresh.enabled",
	"refresh_cron":      "refresh.cron",
	"refresh_timezone":  "refresh.timezone",
	"refresh_fin_years": "refresh.fin_years",

	"seed_fin_years":   "seed.fin_years",
	"seed_concurrency": "seed.concurrency",

	"meta_cache_ttl": "cache.meta_ttl",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// legacyEnvMappings are the names used by older deployments' .env files.
// They load before envMappings, so DATA_GOV_API_* wins when both are set.
var legacyEnvMappings = map[string]string{
	"base_api": "upstream.base_url",
	"api_key":  "upstream.api_key",
}

func legacyEnvTransformFunc(key string) string {
	return legacyEnvMappings[strings.ToLower(key)]
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unknown names map to "" and are dropped by the provider.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
