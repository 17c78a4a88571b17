// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package api

import (
	"net/http"
	"strconv"
	"strings"
)

// YearRequest is the query of GET /api/bihar and POST /api/sync.
type YearRequest struct {
	FinYear string `query:"fin_year" validate:"omitempty,fin_year"`
}

// DistrictDataRequest is the query of GET /api/data.
type DistrictDataRequest struct {
	DistrictCode string `query:"district_code" validate:"required,alphanum,max=16"`
	FinYear      string `query:"fin_year" validate:"required,fin_year"`
}

// SyncRunsRequest is the query of GET /api/sync/runs.
type SyncRunsRequest struct {
	Limit int `query:"limit" validate:"min=1,max=200"`
}

const defaultSyncRunsLimit = 20

func queryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// queryInt returns def when the parameter is absent and ok=false when it is
// present but not an integer.
func queryInt(r *http.Request, key string, def int) (value int, ok bool) {
	raw := queryString(r, key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
