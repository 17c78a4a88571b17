// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package models

// YearListResponse is the body of GET /api/bihar.
type YearListResponse struct {
	Status string         `json:"status" example:"ok"`
	Count  int            `json:"count" example:"456"`
	Data   []MetricRecord `json:"data"`
}

// DistrictDataResponse is the body of GET /api/data. Metrics repeats the
// per-month metrics in record order for charting.
type DistrictDataResponse struct {
	Summary DistrictSummary `json:"summary"`
	Records []MetricRecord  `json:"records"`
	Metrics []Metrics       `json:"metrics"`
}

// SyncRunsResponse is the body of GET /api/sync/runs.
type SyncRunsResponse struct {
	Count int       `json:"count"`
	Runs  []SyncRun `json:"runs"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database,omitempty" example:"duckdb"`
	// Upstream is the data.gov.in circuit breaker state. An open breaker
	// does not fail readiness; stored data is still served.
	Upstream      string `json:"upstream,omitempty" example:"closed"`
	UptimeSeconds int64  `json:"uptime_seconds,omitempty" example:"3600"`
	Error         string `json:"error,omitempty"`
}

// ErrorResponse is written for every 4xx/5xx. Error says what failed;
// Message carries the underlying cause or validation detail.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
