// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package database

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS district_metrics (
		district_code VARCHAR NOT NULL,
		fin_year      VARCHAR NOT NULL,
		month         VARCHAR NOT NULL,
		district_name VARCHAR NOT NULL DEFAULT '',
		metrics       VARCHAR NOT NULL,
		last_updated  TIMESTAMP NOT NULL,
		PRIMARY KEY (district_code, fin_year, month)
	)`,
	`CREATE TABLE IF NOT EXISTS sync_runs (
		run_id         VARCHAR PRIMARY KEY,
		fin_year       VARCHAR NOT NULL,
		run_trigger    VARCHAR NOT NULL,
		status         VARCHAR NOT NULL,
		started_at     TIMESTAMP NOT NULL,
		finished_at    TIMESTAMP,
		pages          INTEGER NOT NULL DEFAULT 0,
		records        INTEGER NOT NULL DEFAULT 0,
		skipped        INTEGER NOT NULL DEFAULT 0,
		upstream_total INTEGER NOT NULL DEFAULT 0,
		error          VARCHAR NOT NULL DEFAULT ''
	)`,
}

func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
