// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/rozgar/internal/cache"
	"github.com/tomtom215/rozgar/internal/logging"
	"github.com/tomtom215/rozgar/internal/models"
)

// ErrNotFound is returned by Detail when no rows exist after one refresh.
var ErrNotFound = errors.New("no data found for district and financial year")

const metaCacheKey = "meta"

// Store is the read side of the metrics store.
// Implemented by database.DB and pgstore.Store.
type Store interface {
	ListByYear(ctx context.Context, finYear string) ([]models.MetricRecord, error)
	ListByDistrictYear(ctx context.Context, districtCode, finYear string) ([]models.MetricRecord, error)
	FinYears(ctx context.Context) ([]string, error)
	Districts(ctx context.Context) ([]models.DistrictRef, error)
	ListSyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error)
	Ping(ctx context.Context) error
	Driver() string
}

// Refresher ingests one financial year. Implemented by sync.Ingestor.
type Refresher interface {
	Sync(ctx context.Context, finYear string, trigger models.SyncTrigger) (*models.SyncRun, error)
}

// Options tunes a Service.
type Options struct {
	// DefaultFinYear is used when the store has no years yet.
	DefaultFinYear string
	// MetaTTL bounds how long the meta projection is served from memory.
	// Zero disables caching.
	MetaTTL time.Duration
	// SyncTimeout bounds a sync started by a read or by TriggerSync.
	// Zero means no bound.
	SyncTimeout time.Duration
}

// Service is the query service behind the REST API.
type Service struct {
	store     Store
	refresher Refresher
	opts      Options
	meta      *cache.Cache[*models.Meta]

	// metaMu orders cache fills against InvalidateCache. A projection
	// read under an older generation is never stored.
	metaMu  sync.Mutex
	metaGen uint64
}

// New creates a query service. refresher may be nil, in which case misses
// are answered from the store alone.
func New(store Store, refresher Refresher, opts Options) *Service {
	return &Service{
		store:     store,
		refresher: refresher,
		opts:      opts,
		meta:      cache.New[*models.Meta]("meta", opts.MetaTTL),
	}
}

// ListByYear returns every district-month row for finYear, sorted by
// district then month. An empty store triggers one refresh.
func (s *Service) ListByYear(ctx context.Context, finYear string) ([]models.MetricRecord, error) {
	rows, err := s.store.ListByYear(ctx, finYear)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", finYear, err)
	}
	if len(rows) > 0 {
		return rows, nil
	}

	s.refresh(ctx, finYear)

	rows, err = s.store.ListByYear(ctx, finYear)
	if err != nil {
		return nil, fmt.Errorf("list %s after refresh: %w", finYear, err)
	}
	return rows, nil
}

// Detail returns one district's months for finYear with a summary.
func (s *Service) Detail(ctx context.Context, districtCode, finYear string) (*models.DistrictDetail, error) {
	rows, err := s.store.ListByDistrictYear(ctx, districtCode, finYear)
	if err != nil {
		return nil, fmt.Errorf("detail %s/%s: %w", districtCode, finYear, err)
	}
	if len(rows) == 0 {
		s.refresh(ctx, finYear)

		rows, err = s.store.ListByDistrictYear(ctx, districtCode, finYear)
		if err != nil {
			return nil, fmt.Errorf("detail %s/%s after refresh: %w", districtCode, finYear, err)
		}
		if len(rows) == 0 {
			return nil, ErrNotFound
		}
	}

	models.SortByMonth(rows)
	return &models.DistrictDetail{
		Summary: models.Summarize(districtCode, finYear, rows),
		Records: rows,
	}, nil
}

// Meta returns the distinct years (newest first) and districts (by name).
func (s *Service) Meta(ctx context.Context) (*models.Meta, error) {
	if m, ok := s.meta.Get(metaCacheKey); ok {
		return m, nil
	}

	s.metaMu.Lock()
	gen := s.metaGen
	s.metaMu.Unlock()

	years, err := s.store.FinYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("list financial years: %w", err)
	}
	districts, err := s.store.Districts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	if years == nil {
		years = []string{}
	}
	if districts == nil {
		districts = []models.DistrictRef{}
	}

	m := &models.Meta{FinYears: years, Districts: districts}
	s.metaMu.Lock()
	if s.metaGen == gen {
		s.meta.Set(metaCacheKey, m)
	}
	s.metaMu.Unlock()
	return m, nil
}

// DefaultFinYear is the newest stored year, or the configured default when
// nothing is stored.
func (s *Service) DefaultFinYear(ctx context.Context) string {
	m, err := s.Meta(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Falling back to configured financial year")
		return s.opts.DefaultFinYear
	}
	if len(m.FinYears) > 0 {
		return m.FinYears[0]
	}
	return s.opts.DefaultFinYear
}

// TriggerSync runs one manual ingestion and returns its run record.
func (s *Service) TriggerSync(ctx context.Context, finYear string) (*models.SyncRun, error) {
	if s.refresher == nil {
		return nil, errors.New("ingestion is not available")
	}
	syncCtx, cancel := s.syncContext(ctx)
	defer cancel()
	return s.refresher.Sync(syncCtx, finYear, models.TriggerManual)
}

// SyncRuns lists the most recent ingestion runs, newest first.
func (s *Service) SyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	runs, err := s.store.ListSyncRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync runs: %w", err)
	}
	if runs == nil {
		runs = []models.SyncRun{}
	}
	return runs, nil
}

// Ping checks the store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Driver names the backing store.
func (s *Service) Driver() string {
	return s.store.Driver()
}

// InvalidateCache drops cached projections. Wired to the ingestor's
// completion callback.
func (s *Service) InvalidateCache() {
	s.metaMu.Lock()
	s.metaGen++
	s.meta.Clear()
	s.metaMu.Unlock()
	logging.Debug().Msg("Projection cache cleared")
}

// refresh runs one best-effort ingestion for finYear.
func (s *Service) refresh(ctx context.Context, finYear string) {
	if s.refresher == nil {
		return
	}
	syncCtx, cancel := s.syncContext(ctx)
	defer cancel()
	run, err := s.refresher.Sync(syncCtx, finYear, models.TriggerRequest)
	if err != nil {
		event := logging.Ctx(ctx).Warn().Err(err).Str("fin_year", finYear)
		if run != nil {
			event = event.Str("run_id", run.RunID).Str("status", string(run.Status))
		}
		event.Msg("Refresh on cache miss failed")
	}
}

// syncContext detaches a sync from the caller's cancellation so a dropped
// client cannot leave a year half ingested. Values such as the request ID
// are kept.
func (s *Service) syncContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if s.opts.SyncTimeout > 0 {
		return context.WithTimeout(detached, s.opts.SyncTimeout)
	}
	return context.WithCancel(detached)
}
