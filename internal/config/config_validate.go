// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // REFRESH_TIMEZONE must resolve in minimal containers
)

// MaxBatchSize is the largest page the data.gov.in API will honour.
const MaxBatchSize = 1000

// Validate checks that the configuration is usable. Missing upstream
// credentials are not an error here: the service still serves cached rows.
func (c *Config) Validate() error {
	if err := c.validateUpstream(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateRefresh(); err != nil {
		return err
	}
	if err := c.validateSeed(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateUpstream() error {
	u := c.Upstream
	if u.BaseURL != "" {
		if err := validateHTTPURL(u.BaseURL, "DATA_GOV_API_BASE"); err != nil {
			return err
		}
	}
	if strings.TrimSpace(u.State) == "" {
		return fmt.Errorf("UPSTREAM_STATE must not be empty")
	}
	if u.BatchSize < 1 || u.BatchSize > MaxBatchSize {
		return fmt.Errorf("UPSTREAM_BATCH_SIZE must be between 1 and %d, got %d", MaxBatchSize, u.BatchSize)
	}
	if u.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %v", u.Timeout)
	}
	if u.RequestsPerSecond < 0 {
		return fmt.Errorf("UPSTREAM_REQUESTS_PER_SECOND must not be negative")
	}
	if u.RetryAttempts < 0 {
		return fmt.Errorf("UPSTREAM_RETRY_ATTEMPTS must not be negative")
	}
	if u.SyncTimeout < 0 {
		return fmt.Errorf("UPSTREAM_SYNC_TIMEOUT must not be negative, got %v", u.SyncTimeout)
	}
	if err := ValidateFinYear(u.DefaultFinYear); err != nil {
		return fmt.Errorf("DEFAULT_FIN_YEAR: %w", err)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverDuckDB:
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required when DATABASE_DRIVER=duckdb")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATABASE_DRIVER=postgres")
		}
		if c.Database.MaxConns < 1 {
			return fmt.Errorf("DATABASE_MAX_CONNS must be at least 1")
		}
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverDuckDB, DriverPostgres, c.Database.Driver)
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	return nil
}

func (c *Config) validateRefresh() error {
	if !c.Refresh.Enabled {
		return nil
	}
	if n := len(strings.Fields(c.Refresh.Cron)); n != 5 {
		return fmt.Errorf("REFRESH_CRON must have 5 fields, got %d", n)
	}
	if _, err := time.LoadLocation(c.Refresh.Timezone); err != nil {
		return fmt.Errorf("REFRESH_TIMEZONE is invalid: %w", err)
	}
	if len(c.Refresh.FinYears) == 0 {
		return fmt.Errorf("REFRESH_FIN_YEARS must list at least one year when refresh is enabled")
	}
	for _, y := range c.Refresh.FinYears {
		if err := ValidateFinYear(y); err != nil {
			return fmt.Errorf("REFRESH_FIN_YEARS: %w", err)
		}
	}
	return nil
}

func (c *Config) validateSeed() error {
	for _, y := range c.Seed.FinYears {
		if err := ValidateFinYear(y); err != nil {
			return fmt.Errorf("SEED_FIN_YEARS: %w", err)
		}
	}
	if c.Seed.Concurrency < 1 {
		return fmt.Errorf("SEED_CONCURRENCY must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not recognised", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// ValidateFinYear checks the "YYYY-YYYY" fiscal year label used by the
// upstream, where the second year follows the first.
func ValidateFinYear(s string) error {
	start, end, ok := strings.Cut(s, "-")
	if !ok || len(start) != 4 || len(end) != 4 {
		return fmt.Errorf("fin year %q must look like 2024-2025", s)
	}
	a, err := strconv.Atoi(start)
	if err != nil {
		return fmt.Errorf("fin year %q must look like 2024-2025", s)
	}
	b, err := strconv.Atoi(end)
	if err != nil || b != a+1 {
		return fmt.Errorf("fin year %q must span two consecutive years", s)
	}
	return nil
}

// validateHTTPURL accepts http(s) URLs with a host. Paths are allowed since
// data.gov.in resources are addressed by path.
func validateHTTPURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", field, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", field)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", field, u.RawQuery)
	}
	return nil
}
