// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

// Package main provides the Rozgar HTTP server
//
// @title Rozgar API
// @version 1.0
// @description District-level MGNREGA employment metrics for Bihar, sourced from data.gov.in.
// @description
// @description ## Data freshness
// @description
// @description Rows are served from the local store. The first request for a financial
// @description year with no stored rows triggers a single upstream sync.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 120 requests per minute per IP address.
// @description `POST /api/sync/` is limited separately to 2 requests per minute.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description { "error": "what failed", "message": "underlying cause" }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/rozgar
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:5000
// @BasePath /
// @schemes http https
//
// @tag.name Metrics
// @tag.description District-month MGNREGA metrics
//
// @tag.name Sync
// @tag.description Upstream ingestion runs
//
// @tag.name Core
// @tag.description Health checks
package main
