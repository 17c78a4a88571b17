// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/rozgar/internal/metrics"
	"github.com/tomtom215/rozgar/internal/models"
)

// SaveSyncRun inserts or updates a run by run_id. The ingestor saves a run
// when it starts and again when it finishes.
func (db *DB) SaveSyncRun(ctx context.Context, run *models.SyncRun) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var finished sql.NullTime
	if run.FinishedAt != nil {
		finished = sql.NullTime{Time: run.FinishedAt.UTC(), Valid: true}
	}

	start := time.Now()
	err := withConflictRetry(ctx, func() error {
		_, err := db.conn.ExecContext(ctx, `INSERT INTO sync_runs (
			run_id, fin_year, run_trigger, status, started_at, finished_at,
			pages, records, skipped, upstream_total, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (run_id) DO UPDATE SET
			status = EXCLUDED.status,
			finished_at = EXCLUDED.finished_at,
			pages = EXCLUDED.pages,
			records = EXCLUDED.records,
			skipped = EXCLUDED.skipped,
			upstream_total = EXCLUDED.upstream_total,
			error = EXCLUDED.error`,
			run.RunID, run.FinYear, string(run.Trigger), string(run.Status), run.StartedAt.UTC(), finished,
			run.Pages, run.Records, run.Skipped, run.Total, run.Error,
		)
		return err
	})
	metrics.RecordStoreQuery(DriverName, "save_sync_run", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to save sync run %s: %w", run.RunID, err)
	}
	return nil
}

// ListSyncRuns returns up to limit runs, newest first.
func (db *DB) ListSyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	runs, err := db.querySyncRuns(ctx, limit)
	metrics.RecordStoreQuery(DriverName, "list_sync_runs", time.Since(start), err)
	return runs, err
}

func (db *DB) querySyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT run_id, fin_year, run_trigger, status, started_at, finished_at,
		pages, records, skipped, upstream_total, error
		FROM sync_runs ORDER BY started_at DESC, run_id DESC LIMIT %d`, limit)
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	defer closeWithLog(rows, "rows")

	runs := []models.SyncRun{}
	for rows.Next() {
		var r models.SyncRun
		var trigger, status string
		var finished sql.NullTime
		if err := rows.Scan(&r.RunID, &r.FinYear, &trigger, &status, &r.StartedAt, &finished,
			&r.Pages, &r.Records, &r.Skipped, &r.Total, &r.Error); err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}
		r.Trigger = models.SyncTrigger(trigger)
		r.Status = models.SyncStatus(status)
		r.StartedAt = r.StartedAt.UTC()
		if finished.Valid {
			t := finished.Time.UTC()
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
