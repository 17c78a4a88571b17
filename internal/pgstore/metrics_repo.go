// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/rozgar/internal/metrics"
	"github.com/tomtom215/rozgar/internal/models"
)

const upsertMetricSQL = `INSERT INTO district_metrics (
	district_code, fin_year, month, district_name, metrics, last_updated
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (district_code, fin_year, month) DO UPDATE SET
	district_name = EXCLUDED.district_name,
	metrics = EXCLUDED.metrics,
	last_updated = EXCLUDED.last_updated`

const selectMetricColumns = `SELECT district_code, fin_year, month, district_name, metrics, last_updated
FROM district_metrics`

// UpsertMetrics writes one page of records as a single batched transaction.
func (s *Store) UpsertMetrics(ctx context.Context, records []models.MetricRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	rows := models.DedupeByKey(records)
	batch := &pgx.Batch{}
	for i := range rows {
		r := &rows[i]
		payload, err := json.Marshal(r.Metrics)
		if err != nil {
			return 0, fmt.Errorf("failed to encode metrics for %s: %w", r.Key(), err)
		}
		batch.Queue(upsertMetricSQL, r.DistrictCode, r.FinYear, r.Month, r.DistrictName, payload, r.LastUpdated.UTC())
	}

	start := time.Now()
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("failed to upsert metric %s: %w", rows[i].Key(), err)
			}
		}
		return br.Close()
	})
	metrics.RecordStoreQuery(DriverName, "upsert_metrics", time.Since(start), err)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ListByYear returns every cached row for finYear, grouped by district and
// ordered by fiscal month within each district.
func (s *Store) ListByYear(ctx context.Context, finYear string) ([]models.MetricRecord, error) {
	start := time.Now()
	records, err := s.queryMetrics(ctx,
		selectMetricColumns+` WHERE fin_year = $1 ORDER BY district_name, district_code, month`, finYear)
	metrics.RecordStoreQuery(DriverName, "list_by_year", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	models.SortByDistrictMonth(records)
	return records, nil
}

// ListByDistrictYear returns one district's rows for finYear by fiscal month.
func (s *Store) ListByDistrictYear(ctx context.Context, districtCode, finYear string) ([]models.MetricRecord, error) {
	start := time.Now()
	records, err := s.queryMetrics(ctx,
		selectMetricColumns+` WHERE district_code = $1 AND fin_year = $2 ORDER BY month`, districtCode, finYear)
	metrics.RecordStoreQuery(DriverName, "list_by_district_year", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	models.SortByMonth(records)
	return records, nil
}

// FinYears returns the distinct fin years present, newest first.
func (s *Store) FinYears(ctx context.Context) ([]string, error) {
	start := time.Now()
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT fin_year FROM district_metrics ORDER BY fin_year DESC`)
	var years []string
	if err == nil {
		years, err = pgx.CollectRows(rows, pgx.RowTo[string])
	}
	metrics.RecordStoreQuery(DriverName, "fin_years", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query fin years: %w", err)
	}
	if years == nil {
		years = []string{}
	}
	return years, nil
}

// Districts returns distinct (district_code, district_name) pairs by name.
func (s *Store) Districts(ctx context.Context) ([]models.DistrictRef, error) {
	start := time.Now()
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT district_code, district_name FROM district_metrics ORDER BY district_name, district_code`)
	var districts []models.DistrictRef
	if err == nil {
		districts, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DistrictRef, error) {
			var d models.DistrictRef
			err := row.Scan(&d.DistrictCode, &d.DistrictName)
			return d, err
		})
	}
	metrics.RecordStoreQuery(DriverName, "districts", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query districts: %w", err)
	}
	if districts == nil {
		districts = []models.DistrictRef{}
	}
	return districts, nil
}

func (s *Store) queryMetrics(ctx context.Context, query string, args ...any) ([]models.MetricRecord, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query district metrics: %w", err)
	}
	records, err := pgx.CollectRows(rows, scanMetricRecord)
	if err != nil {
		return nil, fmt.Errorf("failed to read district metrics: %w", err)
	}
	if records == nil {
		records = []models.MetricRecord{}
	}
	return records, nil
}

func scanMetricRecord(row pgx.CollectableRow) (models.MetricRecord, error) {
	var rec models.MetricRecord
	var payload []byte
	if err := row.Scan(&rec.DistrictCode, &rec.FinYear, &rec.Month, &rec.DistrictName, &payload, &rec.LastUpdated); err != nil {
		return rec, err
	}
	if err := json.Unmarshal(payload, &rec.Metrics); err != nil {
		return rec, fmt.Errorf("failed to decode metrics for %s: %w", rec.Key(), err)
	}
	rec.LastUpdated = rec.LastUpdated.UTC()
	return rec, nil
}
