// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package middleware provides chi-compatible HTTP middleware.

  - RequestID: accepts or mints an X-Request-ID and stores it in the context
    for logging.Ctx.
  - AccessLog: one structured log line per request, warning above a latency
    threshold. Cache-miss reads run a full upstream sync, so slow requests
    are expected occasionally and worth seeing.
  - PrometheusMetrics: request counts and latency labeled by chi route
    pattern, not raw path, so query strings and path values do not explode
    label cardinality.
  - Compression: gzip for clients that accept it. /api/bihar returns every
    district-month of a year and compresses well.

Order in the router:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Route("/api", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Use(middleware.Compression)
	    ...
	})
*/
package middleware
