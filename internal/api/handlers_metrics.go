// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/rozgar/internal/logging"
	"github.com/tomtom215/rozgar/internal/models"
	"github.com/tomtom215/rozgar/internal/service"
	"github.com/tomtom215/rozgar/internal/validation"
)

// Bihar lists every stored district-month row for one financial year.
//
// @Summary List district metrics for a financial year
// @Description Returns one row per district and month. When nothing is stored for the year, one ingestion from the upstream dataset runs before the store is read again; the response then holds whatever that ingestion wrote, possibly nothing.
// @Tags Metrics
// @Produce json
// @Param fin_year query string false "Financial year as YYYY-YYYY (default: newest stored year)" example(2024-2025)
// @Success 200 {object} models.YearListResponse
// @Failure 400 {object} models.ErrorResponse "Malformed fin_year"
// @Failure 500 {object} models.ErrorResponse "Store failure"
// @Router /api/bihar [get]
func (h *Handler) Bihar(w http.ResponseWriter, r *http.Request) {
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

	rows, err := h.svc.ListByYear(ctx, finYear)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Server error", err)
		return
	}
	if rows == nil {
		rows = []models.MetricRecord{}
	}

	logging.Ctx(ctx).Debug().Str("fin_year", finYear).Int("count", len(rows)).Msg("Listed district metrics")
	respondJSON(w, r, http.StatusOK, models.YearListResponse{
		Status: "ok",
		Count:  len(rows),
		Data:   rows,
	})
}

// Meta lists the stored financial years and districts.
//
// @Summary Selector metadata
// @Description Distinct financial years (newest first) and districts (by name). Reads only what is stored and never triggers ingestion.
// @Tags Metrics
// @Produce json
// @Success 200 {object} models.Meta
// @Failure 500 {object} models.ErrorResponse "Store failure"
// @Router /api/meta [get]
func (h *Handler) Meta(w http.ResponseWriter, r *http.Request) {
	meta, err := h.svc.Meta(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Failed to load meta", err)
		return
	}
	respondJSON(w, r, http.StatusOK, meta)
}

// DistrictData returns the months and summary of one district in one year.
//
// @Summary District detail
// @Description Rows sorted by fiscal month (April first) plus a summary and the per-month metrics. When nothing is stored, one ingestion of the year runs first; 404 if the district is still absent.
// @Tags Metrics
// @Produce json
// @Param district_code query string true "District code" example(0515)
// @Param fin_year query string true "Financial year as YYYY-YYYY" example(2023-2024)
// @Success 200 {object} models.DistrictDataResponse
// @Failure 400 {object} models.ErrorResponse "Missing or malformed parameters"
// @Failure 404 {object} models.ErrorResponse "No data for the district and year"
// @Failure 500 {object} models.ErrorResponse "Store failure"
// @Router /api/data [get]
func (h *Handler) DistrictData(w http.ResponseWriter, r *http.Request) {
	req := DistrictDataRequest{
		DistrictCode: queryString(r, "district_code"),
		FinYear:      queryString(r, "fin_year"),
	}
	if req.DistrictCode == "" || req.FinYear == "" {
		respondError(w, r, http.StatusBadRequest, "district_code and fin_year are required", nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid query parameters", verr)
		return
	}

	detail, err := h.svc.Detail(r.Context(), req.DistrictCode, req.FinYear)
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "No data found for the requested district/fin_year", nil)
		return
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, "Failed to load district data", err)
		return
	}

	metrics := make([]models.Metrics, len(detail.Records))
	for i := range detail.Records {
		metrics[i] = detail.Records[i].Metrics
	}
	respondJSON(w, r, http.StatusOK, models.DistrictDataResponse{
		Summary: detail.Summary,
		Records: detail.Records,
		Metrics: metrics,
	})
}
