// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

// Package pgstore is the PostgreSQL backend, selected with
// DATABASE_DRIVER=postgres. It exposes the same method set as the DuckDB
// store in internal/database and keeps the metrics payload in a JSONB column.
// Schema changes live in migrations/ and are applied on startup.
package pgstore
