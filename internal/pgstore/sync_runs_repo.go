// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/rozgar/internal/metrics"
	"github.com/tomtom215/rozgar/internal/models"
)

// SaveSyncRun inserts or updates a run by run_id.
func (s *Store) SaveSyncRun(ctx context.Context, run *models.SyncRun) error {
	start := time.Now()
	_, err := s.pool.Exec(ctx, `INSERT INTO sync_runs (
		run_id, fin_year, run_trigger, status, started_at, finished_at,
		pages, records, skipped, upstream_total, error
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (run_id) DO UPDATE SET
		status = EXCLUDED.status,
		finished_at = EXCLUDED.finished_at,
		pages = EXCLUDED.pages,
		records = EXCLUDED.records,
		skipped = EXCLUDED.skipped,
		upstream_total = EXCLUDED.upstream_total,
		error = EXCLUDED.error`,
		run.RunID, run.FinYear, string(run.Trigger), string(run.Status), run.StartedAt.UTC(), run.FinishedAt,
		run.Pages, run.Records, run.Skipped, run.Total, run.Error,
	)
	metrics.RecordStoreQuery(DriverName, "save_sync_run", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to save sync run %s: %w", run.RunID, err)
	}
	return nil
}

// ListSyncRuns returns up to limit runs, newest first.
func (s *Store) ListSyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}

	start := time.Now()
	rows, err := s.pool.Query(ctx, `SELECT run_id, fin_year, run_trigger, status, started_at, finished_at,
		pages, records, skipped, upstream_total, error
		FROM sync_runs ORDER BY started_at DESC, run_id DESC LIMIT $1`, limit)
	var runs []models.SyncRun
	if err == nil {
		runs, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SyncRun, error) {
			var r models.SyncRun
			var trigger, status string
			if err := row.Scan(&r.RunID, &r.FinYear, &trigger, &status, &r.StartedAt, &r.FinishedAt,
				&r.Pages, &r.Records, &r.Skipped, &r.Total, &r.Error); err != nil {
				return r, err
			}
			r.Trigger = models.SyncTrigger(trigger)
			r.Status = models.SyncStatus(status)
			r.StartedAt = r.StartedAt.UTC()
			if r.FinishedAt != nil {
				t := r.FinishedAt.UTC()
				r.FinishedAt = &t
			}
			return r, nil
		})
	}
	metrics.RecordStoreQuery(DriverName, "list_sync_runs", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	if runs == nil {
		runs = []models.SyncRun{}
	}
	return runs, nil
}
