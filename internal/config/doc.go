// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package config loads Rozgar configuration with koanf.

Sources are layered with increasing priority:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, then config.yaml, config.yml,
    /etc/rozgar/config.yaml
 3. Environment variables, mapped explicitly in envTransformFunc

Unmapped environment variables are ignored.

# Environment Variables

Upstream (data.gov.in):
  - DATA_GOV_API_BASE: resource URL, e.g. https://api.data.gov.in/resource/<id>
  - DATA_GOV_API_KEY: API key
  - BASE_API, API_KEY: older names for the two above, used only when the
    DATA_GOV_API_* variable is unset
  - UPSTREAM_STATE: state filter (default: BIHAR)
  - UPSTREAM_BATCH_SIZE: records per page (default: 10)
  - UPSTREAM_TIMEOUT: HTTP client timeout (default: 30s)
  - UPSTREAM_REQUESTS_PER_SECOND: client-side pacing (default: 2)
  - UPSTREAM_RETRY_ATTEMPTS: retries on HTTP 429 only (default: 0)
  - UPSTREAM_SYNC_TIMEOUT: bound on one ingestion run, 0 for none (default: 10m)
  - DEFAULT_FIN_YEAR: fallback reporting year (default: 2024-2025)

Store:
  - DATABASE_DRIVER: duckdb or postgres (default: duckdb)
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - DATABASE_URL: postgres connection string

Server:
  - PORT (default: 5000), HTTP_HOST, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT,
    SHUTDOWN_TIMEOUT
  - CORS_ORIGINS: comma separated
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, RATE_LIMIT_DISABLED

Refresh and seeding:
  - REFRESH_ENABLED, REFRESH_CRON (default: "0 3 1 1 *"), REFRESH_TIMEZONE,
    REFRESH_FIN_YEARS
  - SEED_FIN_YEARS, SEED_CONCURRENCY

Other:
  - META_CACHE_TTL (default: 5m)
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
