// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/rozgar/internal/logging"
)

// AccessLog logs each request at debug level, or at warn when it took
// longer than slowThreshold. A non-positive threshold disables the warning.
// 5xx responses are always logged at error level.
func AccessLog(slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			logger := logging.Ctx(r.Context())
			var event *zerolog.Event
			msg := "HTTP request"
			switch {
			case sw.statusCode >= http.StatusInternalServerError:
				event = logger.Error()
			case slowThreshold > 0 && duration > slowThreshold:
				event = logger.Warn().Dur("threshold", slowThreshold)
				msg = "Slow request detected"
			default:
				event = logger.Debug()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Int("status", sw.statusCode).
				Int("bytes", sw.bytes).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Msg(msg)
		})
	}
}
