// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tomtom215/rozgar/internal/config"
	"github.com/tomtom215/rozgar/internal/logging"
	"github.com/tomtom215/rozgar/internal/metrics"
	"github.com/tomtom215/rozgar/internal/models"
	"github.com/tomtom215/rozgar/internal/upstream"
)

// ErrUpstreamNotConfigured is returned when the base URL or API key is missing.
var ErrUpstreamNotConfigured = errors.New("upstream base URL or API key not configured")

// defaultBatchSize matches the page size the resource serves without a limit.
const defaultBatchSize = 10

// Store is the subset of the metrics store the ingestor writes to.
// Implemented by database.DB and pgstore.Store.
type Store interface {
	UpsertMetrics(ctx context.Context, records []models.MetricRecord) (int, error)
	SaveSyncRun(ctx context.Context, run *models.SyncRun) error
}

// Ingestor pulls one financial year at a time from the upstream resource.
type Ingestor struct {
	cfg    config.UpstreamConfig
	client upstream.Client
	store  Store
	now    func() time.Time

	mu              sync.RWMutex
	onSyncCompleted func(run *models.SyncRun)
}

// NewIngestor creates an ingestor. cfg is captured by value; changing the
// configuration requires a new ingestor.
func NewIngestor(cfg config.UpstreamConfig, client upstream.Client, store Store) *Ingestor {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	logging.Info().
		Str("state", cfg.State).
		Int("batch_size", cfg.BatchSize).
		Bool("configured", cfg.IsConfigured()).
		Msg("Ingestor config loaded")

	return &Ingestor{
		cfg:    cfg,
		client: client,
		store:  store,
		now:    time.Now,
	}
}

// SetOnSyncCompleted sets a callback invoked after every run that wrote at
// least one record.
func (i *Ingestor) SetOnSyncCompleted(callback func(run *models.SyncRun)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.onSyncCompleted = callback
}

// Sync ingests every page of finYear. The returned run is never nil. The
// error is informational: partial data written before it remains stored.
func (i *Ingestor) Sync(ctx context.Context, finYear string, trigger models.SyncTrigger) (*models.SyncRun, error) {
	run := &models.SyncRun{
		RunID:     ulid.Make().String(),
		FinYear:   finYear,
		Trigger:   trigger,
		Status:    models.SyncStatusRunning,
		StartedAt: i.now().UTC(),
	}
	ctx = logging.ContextWithSyncRunID(ctx, run.RunID)

	if !i.cfg.IsConfigured() || i.client == nil {
		logging.Ctx(ctx).Warn().Str("fin_year", finYear).Msg("Upstream not configured, skipping ingestion")
		return i.finish(ctx, run, models.SyncStatusSkipped, ErrUpstreamNotConfigured, "")
	}

	logging.Ctx(ctx).Info().
		Str("fin_year", finYear).
		Str("trigger", string(trigger)).
		Msg("Sync started")
	i.saveRun(ctx, run)

	if err := i.fetchAndProcessPages(ctx, run); err != nil {
		status := models.SyncStatusFailed
		if run.Records > 0 {
			status = models.SyncStatusPartial
		}
		return i.finish(ctx, run, status, err, errorType(err))
	}
	return i.finish(ctx, run, models.SyncStatusSuccess, nil, "")
}

// fetchAndProcessPages walks the resource sequentially, updating run as it goes.
func (i *Ingestor) fetchAndProcessPages(ctx context.Context, run *models.SyncRun) error {
	batchSize := i.cfg.BatchSize
	offset := 0

	for {
		page, err := i.client.FetchPage(ctx, run.FinYear, offset, batchSize)
		if err != nil {
			return fmt.Errorf("fetch page at offset %d: %w", offset, err)
		}
		run.Pages++
		run.Total = page.Total
		metrics.SyncPagesFetched.Inc()

		if len(page.Records) == 0 {
			return nil
		}

		written, err := i.processPage(ctx, run, page.Records)
		if err != nil {
			return fmt.Errorf("store page at offset %d: %w", offset, err)
		}

		logging.Ctx(ctx).Debug().
			Int("offset", offset).
			Int("batch_size", len(page.Records)).
			Int("written", written).
			Int("total", page.Total).
			Msg("Processed page")

		if len(page.Records) < batchSize {
			return nil
		}
		offset += batchSize
		if offset >= page.Total {
			return nil
		}
	}
}

// processPage converts one batch and writes it in a single store transaction.
func (i *Ingestor) processPage(ctx context.Context, run *models.SyncRun, raw []map[string]any) (int, error) {
	now := i.now()
	records := make([]models.MetricRecord, 0, len(raw))
	for _, r := range raw {
		rec, err := models.RecordFromUpstream(r, run.FinYear, now)
		if err != nil {
			run.Skipped++
			metrics.SyncRecordsSkipped.Inc()
			logging.Ctx(ctx).Debug().Err(err).Str("district_code", rec.DistrictCode).Msg("Skipping upstream record")
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return 0, nil
	}

	n, err := i.store.UpsertMetrics(ctx, records)
	if err != nil {
		return 0, &storeError{err: err}
	}
	run.Records += n
	return n, nil
}

func (i *Ingestor) finish(ctx context.Context, run *models.SyncRun, status models.SyncStatus, runErr error, errType string) (*models.SyncRun, error) {
	finished := i.now().UTC()
	run.FinishedAt = &finished
	run.Status = status
	if runErr != nil {
		run.Error = runErr.Error()
	}

	i.saveRun(ctx, run)
	metrics.RecordSyncRun(string(run.Trigger), run.FinYear, string(status), run.Duration(), run.Records, errType)

	event := logging.Ctx(ctx).Info()
	if runErr != nil {
		event = logging.Ctx(ctx).Warn().Err(runErr)
	}
	event.
		Str("fin_year", run.FinYear).
		Str("status", string(status)).
		Int("pages", run.Pages).
		Int("records", run.Records).
		Int("skipped", run.Skipped).
		Dur("duration", run.Duration()).
		Msg("Sync finished")

	if run.Records > 0 {
		i.mu.RLock()
		callback := i.onSyncCompleted
		i.mu.RUnlock()
		if callback != nil {
			callback(run)
		}
	}

	return run, runErr
}

// saveRun persists run bookkeeping. Failures here never fail the run.
func (i *Ingestor) saveRun(ctx context.Context, run *models.SyncRun) {
	// The run record outlives a canceled request.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := i.store.SaveSyncRun(saveCtx, run); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to save sync run")
	}
}

// errorType labels a failure for the sync_errors metric.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, upstream.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, upstream.ErrRateLimited):
		return "rate_limited"
	}
	var storeErr *storeError
	if errors.As(err, &storeErr) {
		return "database"
	}
	return "upstream"
}

// storeError marks a failure on the write side of a run.
type storeError struct {
	err error
}

func (e *storeError) Error() string { return e.err.Error() }
func (e *storeError) Unwrap() error { return e.err }
