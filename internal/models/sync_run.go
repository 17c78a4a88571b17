// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package models

import "time"

// SyncTrigger names what started an ingestion run.
type SyncTrigger string

const (
	TriggerRequest  SyncTrigger = "request"  // cache miss on a read
	TriggerSchedule SyncTrigger = "schedule" // yearly refresh
	TriggerSeed     SyncTrigger = "seed"     // cmd/seed
	TriggerManual   SyncTrigger = "manual"   // POST /api/sync
)

// SyncStatus is the outcome of an ingestion run.
type SyncStatus string

const (
	SyncStatusRunning SyncStatus = "running"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusPartial SyncStatus = "partial" // failed after writing at least one page
	SyncStatusFailed  SyncStatus = "failed"
	SyncStatusSkipped SyncStatus = "skipped" // upstream not configured
)

// SyncRun records one ingestion invocation.
type SyncRun struct {
	RunID      string      `json:"run_id"`
	FinYear    string      `json:"fin_year"`
	Trigger    SyncTrigger `json:"trigger"`
	Status     SyncStatus  `json:"status"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
	Pages      int         `json:"pages"`
	Records    int         `json:"records"`
	Skipped    int         `json:"skipped"`
	Total      int         `json:"upstream_total"`
	Error      string      `json:"error,omitempty"`
}

// Duration is zero while the run is in progress.
func (r *SyncRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
