// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package api

import (
	"time"

	"github.com/tomtom215/rozgar/internal/service"
)

// Handler holds the HTTP handlers. Each handler parses and validates its
// query, calls the query service and maps errors to status codes.
type Handler struct {
	svc       *service.Service
	upstream  BreakerState
	startTime time.Time
}

// BreakerState reports the upstream circuit breaker state.
// Implemented by upstream.CircuitBreakerClient.
type BreakerState interface {
	State() string
}

// NewHandler creates the handler set over svc.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		svc:       svc,
		startTime: time.Now(),
	}
}

// SetUpstream adds the upstream breaker state to readiness output.
func (h *Handler) SetUpstream(u BreakerState) {
	h.upstream = u
}
