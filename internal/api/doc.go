// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package api serves the REST API with the chi router.

Routes:

	GET  /api/bihar        every district-month row for a financial year
	GET  /api/meta         stored years and districts, for selectors
	GET  /api/data         months and summary for one district and year
	POST /api/sync         run one ingestion now
	GET  /api/sync/runs    recent ingestion runs
	GET  /health/live      liveness
	GET  /health/ready     store ping
	GET  /metrics          Prometheus
	GET  /swagger/*        OpenAPI UI

Reads on /api/bihar and /api/data that find nothing trigger one ingestion
of the requested year before reading again (see internal/service). A client
can therefore wait as long as a full upstream pagination on a cold store.

Every 4xx/5xx body is models.ErrorResponse: "error" says what failed and
"message" carries the cause. /api/data rejects missing or malformed
parameters with 400 before touching the store.
*/
package api
