// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a
// thread-safe singleton validator with the application's custom rules and
// human-readable error messages for the API's {"error","message"} body.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Custom "fin_year" rule for financial years such as 2024-2025
//   - Field names taken from the `query` or `json` struct tag, so messages
//     name the parameter the client actually sent
//
// # Quick Start
//
//	type districtDataRequest struct {
//	    DistrictCode string `query:"district_code" validate:"required,alphanum,max=16"`
//	    FinYear      string `query:"fin_year" validate:"required,fin_year"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, r, http.StatusBadRequest, "Invalid query parameters", verr)
//	    return
//	}
//
// # Custom Validation Tags
//
//   - fin_year: "YYYY-YYYY" with consecutive years
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use.
package validation
