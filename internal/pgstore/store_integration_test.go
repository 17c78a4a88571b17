// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

//go:build integration

package pgstore

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/rozgar/internal/config"
	"github.com/tomtom215/rozgar/internal/models"
	"github.com/tomtom215/rozgar/internal/testinfra"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	pg := testinfra.NewPostgresContainer(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	store, err := New(ctx, &config.DatabaseConfig{Driver: config.DriverPostgres, URL: pg.URL, MaxConns: 4})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func metricRecord(code, name, year, month, exp string, at time.Time) models.MetricRecord {
	return models.MetricRecord{
		DistrictCode: code, DistrictName: name, FinYear: year, Month: month,
		Metrics: models.NewMetrics(map[string]any{
			"district_code": code, "district_name": name, "fin_year": year, "month": month, "Total_Exp": exp,
		}),
		LastUpdated: at,
	}
}

func TestStoreUpsertAndQueries(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	t1 := time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC)
	page := []models.MetricRecord{
		metricRecord("0501", "PATNA", "2024-2025", "Dec", "10", t1),
		metricRecord("0501", "PATNA", "2024-2025", "Apr", "5", t1),
		metricRecord("0502", "GAYA", "2023-2024", "Apr", "7", t1),
	}
	if n, err := store.UpsertMetrics(ctx, page); err != nil || n != 3 {
		t.Fatalf("UpsertMetrics = %d, %v", n, err)
	}

	t2 := t1.Add(time.Hour)
	if _, err := store.UpsertMetrics(ctx, []models.MetricRecord{
		metricRecord("0501", "PATNA", "2024-2025", "Dec", "12", t2),
	}); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	rows, err := store.ListByDistrictYear(ctx, "0501", "2024-2025")
	if err != nil {
		t.Fatalf("ListByDistrictYear: %v", err)
	}
	if len(rows) != 2 || rows[0].Month != "Apr" || rows[1].Month != "Dec" {
		t.Fatalf("rows = %+v", rows)
	}
	if !rows[1].LastUpdated.Equal(t2) || *rows[1].Metrics.TotalExpenditure != 12 {
		t.Errorf("Dec row not overwritten: %+v", rows[1])
	}

	years, err := store.FinYears(ctx)
	if err != nil || len(years) != 2 || years[0] != "2024-2025" {
		t.Errorf("FinYears = %v, %v", years, err)
	}

	districts, err := store.Districts(ctx)
	if err != nil || len(districts) != 2 || districts[0].DistrictName != "GAYA" {
		t.Errorf("Districts = %v, %v", districts, err)
	}
}

func TestMigrateTwice(t *testing.T) {
	pg := testinfra.NewPostgresContainer(t)

	for i := 0; i < 2; i++ {
		if err := Migrate(pg.URL); err != nil {
			t.Fatalf("Migrate pass %d: %v", i+1, err)
		}
	}
}

func TestStoreSyncRuns(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	run := &models.SyncRun{RunID: "01JRUN", FinYear: "2024-2025", Trigger: models.TriggerSeed,
		Status: models.SyncStatusRunning, StartedAt: time.Now().UTC()}
	if err := store.SaveSyncRun(ctx, run); err != nil {
		t.Fatalf("SaveSyncRun: %v", err)
	}
	done := run.StartedAt.Add(5 * time.Second)
	run.Status, run.FinishedAt, run.Records = models.SyncStatusSuccess, &done, 38
	if err := store.SaveSyncRun(ctx, run); err != nil {
		t.Fatalf("SaveSyncRun update: %v", err)
	}

	runs, err := store.ListSyncRuns(ctx, 5)
	if err != nil || len(runs) != 1 {
		t.Fatalf("ListSyncRuns = %v, %v", runs, err)
	}
	if runs[0].Status != models.SyncStatusSuccess || runs[0].Records != 38 || runs[0].FinishedAt == nil {
		t.Errorf("run = %+v", runs[0])
	}
}
