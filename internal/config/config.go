// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package config

import (
	"fmt"
	"time"
)

// Config is the root configuration object. It is built once in main and
// passed down explicitly; no package reads the environment on its own.
type Config struct {
	Upstream UpstreamConfig `koanf:"upstream"`
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Refresh  RefreshConfig  `koanf:"refresh"`
	Seed     SeedConfig     `koanf:"seed"`
	Cache    CacheConfig    `koanf:"cache"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// UpstreamConfig describes the data.gov.in MGNREGA resource.
type UpstreamConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	State             string        `koanf:"state"`
	BatchSize         int           `koanf:"batch_size"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	RetryAttempts     int           `koanf:"retry_attempts"` // 429 only
	DefaultFinYear    string        `koanf:"default_fin_year"`
	// SyncTimeout bounds one ingestion run. Runs started by a read outlive
	// the request that triggered them.
	SyncTimeout time.Duration `koanf:"sync_timeout"`
}

// IsConfigured reports whether both the resource URL and key are present.
// Ingestion is skipped, not failed at startup, when they are missing.
func (u UpstreamConfig) IsConfigured() bool {
	return u.BaseURL != "" && u.APIKey != ""
}

// Store drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects and tunes the persistent store.
type DatabaseConfig struct {
	Driver    string `koanf:"driver"`
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = DuckDB default
	URL       string `koanf:"url"`     // postgres only
	MaxConns  int32  `koanf:"max_conns"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RefreshConfig drives the scheduled re-ingestion.
type RefreshConfig struct {
	Enabled  bool     `koanf:"enabled"`
	Cron     string   `koanf:"cron"`
	Timezone string   `koanf:"timezone"`
	FinYears []string `koanf:"fin_years"`
}

// SeedConfig is read by cmd/seed.
type SeedConfig struct {
	FinYears    []string `koanf:"fin_years"`
	Concurrency int      `koanf:"concurrency"`
}

// CacheConfig controls the in-process projection cache.
type CacheConfig struct {
	MetaTTL time.Duration `koanf:"meta_ttl"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
