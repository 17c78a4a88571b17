// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package metrics registers Rozgar's Prometheus collectors on the default
registry and offers small Record* helpers so callers do not deal with label
ordering.

Exposed at GET /metrics:

  - rozgar_sync_*: ingestion runs, pages, upserted records, last success
  - rozgar_upstream_*: data.gov.in request latency and status codes
  - circuit_breaker_*: upstream breaker state and transitions
  - rozgar_store_*: store query latency and errors per driver
  - rozgar_cache_*: projection cache hits and misses
  - api_*: HTTP request counts, latency and in-flight requests
  - rozgar_refresh_next_run_timestamp_seconds: next scheduled refresh
*/
package metrics
