// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package upstream talks to the data.gov.in MGNREGA district resource.

The resource is a paginated JSON endpoint filtered by state and financial
year:

	GET {base_url}?api-key=K&format=json&offset=N&limit=10
	    &filters[state_name]=BIHAR&filters[fin_year]=2024-2025

Each response carries a "total" (sometimes encoded as a string) and a
"records" array of flat objects. The package exposes one operation,
FetchPage, behind the Client interface.

Two implementations are provided:

  - HTTPClient performs the request. Requests are paced with a token bucket
    (golang.org/x/time/rate) and HTTP 429 responses are retried honoring
    Retry-After, up to UpstreamConfig.RetryAttempts times (default 0).
  - CircuitBreakerClient wraps any Client with sony/gobreaker so that an
    unavailable upstream fails fast instead of holding request goroutines
    for the full client timeout.

Usage:

	client := upstream.NewCircuitBreakerClient(upstream.NewHTTPClient(cfg.Upstream))
	page, err := client.FetchPage(ctx, "2024-2025", 0, 10)
*/
package upstream
