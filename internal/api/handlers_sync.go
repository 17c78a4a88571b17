// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/rozgar/internal/models"
	syncpkg "github.com/tomtom215/rozgar/internal/sync"
	"github.com/tomtom215/rozgar/internal/validation"
)

// TriggerSync runs one ingestion in the request and returns its run record.
//
// @Summary Run an ingestion now
// @Description Pages the upstream dataset for the year and upserts every record. Blocks until the run ends. A partial run (some pages written before an error) is still 200.
// @Tags Sync
// @Produce json
// @Param fin_year query string false "Financial year as YYYY-YYYY (default: newest stored year)" example(2024-2025)
// @Success 200 {object} models.SyncRun
// @Failure 400 {object} models.ErrorResponse "Malformed fin_year"
// @Failure 429 {object} models.ErrorResponse "Too many manual syncs"
// @Failure 502 {object} models.ErrorResponse "Run failed before writing anything"
// @Failure 503 {object} models.ErrorResponse "Upstream not configured"
// @Router /api/sync [post]
func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	req := YearRequest{FinYear: queryString(r, "fin_year")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid query parameters", verr)
		return
	}

	ctx := r.Context()
	finYear := req.FinYear
	if finYear == "" {
		finYear = h.svc.DefaultFinYear(ctx)
	}

	run, err := h.svc.TriggerSync(ctx, finYear)
	switch {
	case errors.Is(err, syncpkg.ErrUpstreamNotConfigured):
		respondError(w, r, http.StatusServiceUnavailable, "Upstream is not configured", err)
		return
	case run == nil:
		respondError(w, r, http.StatusServiceUnavailable, "Sync unavailable", err)
		return
	case run.Status == models.SyncStatusFailed:
		if err == nil {
			err = fmt.Errorf("run %s failed", run.RunID)
		}
		respondError(w, r, http.StatusBadGateway, "Sync failed", err)
		return
	}
	respondJSON(w, r, http.StatusOK, run)
}

// SyncRuns lists recent ingestion runs, newest first.
//
// @Summary Recent ingestion runs
// @Tags Sync
// @Produce json
// @Param limit query int false "Maximum runs to return (1-200)" default(20)
// @Success 200 {object} models.SyncRunsResponse
// @Failure 400 {object} models.ErrorResponse "Malformed limit"
// @Failure 500 {object} models.ErrorResponse "Store failure"
// @Router /api/sync/runs [get]
func (h *Handler) SyncRuns(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", defaultSyncRunsLimit)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "Invalid query parameters", errors.New("limit must be an integer"))
		return
	}
	req := SyncRunsRequest{Limit: limit}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid query parameters", verr)
		return
	}

	runs, err := h.svc.SyncRuns(r.Context(), req.Limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Failed to load sync runs", err)
		return
	}
	respondJSON(w, r, http.StatusOK, models.SyncRunsResponse{Count: len(runs), Runs: runs})
}
