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

	"github.com/goccy/go-json"

	"github.com/tomtom215/rozgar/internal/metrics"
	"github.com/tomtom215/rozgar/internal/models"
)

const upsertMetricSQL = `INSERT INTO district_metrics (
	district_code, fin_year, month, district_name, metrics, last_updated
) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (district_code, fin_year, month) DO UPDATE SET
	district_name = EXCLUDED.district_name,
	metrics = EXCLUDED.metrics,
	last_updated = EXCLUDED.last_updated`

const selectMetricColumns = `SELECT district_code, fin_year, month, district_name, metrics, last_updated
FROM district_metrics`

// UpsertMetrics writes one page of records in a single transaction and
// returns the number of rows written. Records sharing a key within the page
// collapse to the last one.
func (db *DB) UpsertMetrics(ctx context.Context, records []models.MetricRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	batch := models.DedupeByKey(records)
	payloads := make([]string, len(batch))
	for i := range batch {
		b, err := json.Marshal(batch[i].Metrics)
		if err != nil {
			return 0, fmt.Errorf("failed to encode metrics for %s: %w", batch[i].Key(), err)
		}
		payloads[i] = string(b)
	}

	start := time.Now()
	err := withConflictRetry(ctx, func() error {
		return db.upsertBatch(ctx, batch, payloads)
	})
	metrics.RecordStoreQuery(DriverName, "upsert_metrics", time.Since(start), err)
	if err != nil {
		return 0, err
	}
	return len(batch), nil
}

func (db *DB) upsertBatch(ctx context.Context, batch []models.MetricRecord, payloads []string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, upsertMetricSQL)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range batch {
		r := &batch[i]
		if _, err := stmt.ExecContext(ctx,
			r.DistrictCode, r.FinYear, r.Month, r.DistrictName, payloads[i], r.LastUpdated.UTC(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to upsert metric %s: %w", r.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit metrics batch: %w", err)
	}
	return nil
}

// ListByYear returns every cached row for finYear, grouped by district and
// ordered by fiscal month within each district.
func (db *DB) ListByYear(ctx context.Context, finYear string) ([]models.MetricRecord, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	records, err := db.queryMetrics(ctx,
		selectMetricColumns+` WHERE fin_year = ? ORDER BY district_name, district_code, month`, finYear)
	metrics.RecordStoreQuery(DriverName, "list_by_year", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	models.SortByDistrictMonth(records)
	return records, nil
}

// ListByDistrictYear returns the rows for one district and year, ordered by
// fiscal month.
func (db *DB) ListByDistrictYear(ctx context.Context, districtCode, finYear string) ([]models.MetricRecord, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	records, err := db.queryMetrics(ctx,
		selectMetricColumns+` WHERE district_code = ? AND fin_year = ? ORDER BY month`, districtCode, finYear)
	metrics.RecordStoreQuery(DriverName, "list_by_district_year", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	models.SortByMonth(records)
	return records, nil
}

// FinYears returns the distinct fin years present, newest first.
func (db *DB) FinYears(ctx context.Context) ([]string, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	years, err := db.queryFinYears(ctx)
	metrics.RecordStoreQuery(DriverName, "fin_years", time.Since(start), err)
	return years, err
}

func (db *DB) queryFinYears(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT DISTINCT fin_year FROM district_metrics ORDER BY fin_year DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fin years: %w", err)
	}
	defer closeWithLog(rows, "rows")

	years := []string{}
	for rows.Next() {
		var y string
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan fin year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// Districts returns the distinct (district_code, district_name) pairs
// sorted by name.
func (db *DB) Districts(ctx context.Context) ([]models.DistrictRef, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	districts, err := db.queryDistricts(ctx)
	metrics.RecordStoreQuery(DriverName, "districts", time.Since(start), err)
	return districts, err
}

func (db *DB) queryDistricts(ctx context.Context) ([]models.DistrictRef, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT district_code, district_name FROM district_metrics ORDER BY district_name, district_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query districts: %w", err)
	}
	defer closeWithLog(rows, "rows")

	districts := []models.DistrictRef{}
	for rows.Next() {
		var d models.DistrictRef
		if err := rows.Scan(&d.DistrictCode, &d.DistrictName); err != nil {
			return nil, fmt.Errorf("failed to scan district: %w", err)
		}
		districts = append(districts, d)
	}
	return districts, rows.Err()
}

func (db *DB) queryMetrics(ctx context.Context, query string, args ...any) ([]models.MetricRecord, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query district metrics: %w", err)
	}
	defer closeWithLog(rows, "rows")

	records := []models.MetricRecord{}
	for rows.Next() {
		rec, err := scanMetricRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate district metrics: %w", err)
	}
	return records, nil
}

func scanMetricRecord(rows *sql.Rows) (models.MetricRecord, error) {
	var rec models.MetricRecord
	var payload string
	if err := rows.Scan(&rec.DistrictCode, &rec.FinYear, &rec.Month, &rec.DistrictName, &payload, &rec.LastUpdated); err != nil {
		return rec, fmt.Errorf("failed to scan district metric: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &rec.Metrics); err != nil {
		return rec, fmt.Errorf("failed to decode metrics for %s: %w", rec.Key(), err)
	}
	rec.LastUpdated = rec.LastUpdated.UTC()
	return rec, nil
}
