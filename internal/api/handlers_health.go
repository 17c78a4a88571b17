// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/rozgar/internal/models"
)

// HealthLive handles liveness probe requests.
//
// @Summary Liveness probe
// @Description Returns 200 while the process is up, regardless of dependencies.
// @Tags Core
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, models.HealthResponse{Status: "ok"})
}

// HealthReady handles readiness probe requests.
//
// @Summary Readiness probe
// @Description Returns 200 when the store answers a ping, 503 otherwise. The upstream breaker state is informational.
// @Tags Core
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:        "ok",
		Database:      h.svc.Driver(),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}
	if h.upstream != nil {
		resp.Upstream = h.upstream.State()
	}
	status := http.StatusOK
	if err := h.svc.Ping(r.Context()); err != nil {
		resp.Status = "unavailable"
		resp.Error = err.Error()
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, r, status, resp)
}
