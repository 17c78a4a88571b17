// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package main is the entry point for the Rozgar API server.

Rozgar serves MGNREGA district-month employment metrics for one state
(Bihar by default), copied from the data.gov.in resource into a local
store. Reads go to the store; a year that has never been ingested is
fetched from upstream once, on demand.

# Application Architecture

	RootSupervisor ("rozgar")
	├── DataSupervisor ("data-layer")
	│   └── Refresh scheduler (cron, Asia/Kolkata)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file and environment
 2. Logging: zerolog with JSON or console output
 3. Store: DuckDB file (default) or PostgreSQL with migrations
 4. Upstream client: rate limited HTTP with a circuit breaker
 5. Ingestor and query service
 6. Supervisor tree: refresh scheduler and HTTP server

# Endpoints

  - GET  /api/bihar?fin_year=YYYY-YYYY   all rows for a year
  - GET  /api/meta                       stored years and districts
  - GET  /api/data?district_code=&fin_year=  one district, months in fiscal order
  - POST /api/sync?fin_year=             force a refresh of one year
  - GET  /api/sync/runs                  recent ingestion runs
  - GET  /health/live, /health/ready, /metrics, /swagger/

# Shutdown

SIGINT or SIGTERM cancels the root context. The HTTP server drains within
SHUTDOWN_TIMEOUT and the store is closed last.
*/
package main
