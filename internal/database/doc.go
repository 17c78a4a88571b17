// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

// Package database is the embedded DuckDB store, the default backend.
//
// Tables:
//   - district_metrics: one row per (district_code, fin_year, month), with the
//     full upstream record in the metrics column as JSON text
//   - sync_runs: one row per ingestion run
//
// Writes are idempotent upserts (INSERT ... ON CONFLICT DO UPDATE). A page of
// records is written in one transaction; DuckDB transaction conflicts from
// concurrent syncs of the same year are retried a few times with a short
// backoff, which is safe because the statements are idempotent.
//
// See internal/pgstore for the PostgreSQL backend with the same method set.
package database
