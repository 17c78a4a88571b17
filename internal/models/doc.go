// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package models defines the data structures shared by ingestion, the stores and
the HTTP API.

  - MetricRecord: one cached row per (district_code, fin_year, month)
  - Metrics: the upstream record, with the fields the dashboard charts parsed
    into typed values and everything else kept verbatim in Extra
  - SyncRun: bookkeeping for one ingestion invocation
  - DistrictSummary, DistrictDetail, Meta: Query Service results
  - *Response: JSON envelopes written by the API handlers
*/
package models
