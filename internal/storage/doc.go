// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

// Package storage opens the configured metrics store. DuckDB (internal/database)
// is the default embedded backend; PostgreSQL (internal/pgstore) is selected
// with DATABASE_DRIVER=postgres.
package storage
