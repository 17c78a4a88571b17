// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/rozgar/internal/config"
	"github.com/tomtom215/rozgar/internal/logging"
	"github.com/tomtom215/rozgar/internal/metrics"
	"github.com/tomtom215/rozgar/internal/models"
)

// Syncer runs one ingestion pass. Satisfied by *sync.Ingestor.
type Syncer interface {
	Sync(ctx context.Context, finYear string, trigger models.SyncTrigger) (*models.SyncRun, error)
}

// Scheduler re-ingests the configured years whenever the cron expression fires.
type Scheduler struct {
	syncer  Syncer
	cron    *CronExpression
	loc     *time.Location
	years   []string
	enabled bool
	now     func() time.Time
	logger  zerolog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewScheduler parses cfg.Cron and cfg.Timezone. An empty timezone means UTC.
func NewScheduler(cfg config.RefreshConfig, syncer Syncer) (*Scheduler, error) {
	cron, err := ParseCron(cfg.Cron)
	if err != nil {
		return nil, fmt.Errorf("parse refresh cron %q: %w", cfg.Cron, err)
	}
	loc := time.UTC
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
	}
	return &Scheduler{
		syncer:  syncer,
		cron:    cron,
		loc:     loc,
		years:   append([]string(nil), cfg.FinYears...),
		enabled: cfg.Enabled,
		now:     time.Now,
		logger:  logging.WithComponent("refresh-scheduler"),
	}, nil
}

// NextRun is the next fire time after now.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.NextRun(s.now(), s.loc)
}

// Start launches the scheduling loop. A disabled scheduler starts an idle
// loop so Stop behaves the same either way.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("refresh scheduler already running")
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	if !s.enabled {
		s.logger.Info().Msg("Refresh scheduler disabled")
		go func() {
			defer close(s.doneCh)
			select {
			case <-s.stopCh:
			case <-ctx.Done():
			}
		}()
		return nil
	}

	s.logger.Info().
		Strs("fin_years", s.years).
		Str("timezone", s.loc.String()).
		Time("next_run", s.NextRun()).
		Msg("Starting refresh scheduler")

	go s.run(ctx)
	return nil
}

// Stop ends the loop and waits for an in-flight refresh to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
	s.logger.Info().Msg("Refresh scheduler stopped")
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.doneCh)

	// Canceling runCtx on Stop aborts a refresh that is still paging.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-runCtx.Done():
		}
	}()

	for {
		next := s.NextRun()
		if next.IsZero() {
			s.logger.Warn().Msg("Refresh cron never fires, scheduler idle")
			<-runCtx.Done()
			return
		}
		metrics.RefreshNextRun.Set(float64(next.Unix()))

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-runCtx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := s.RunOnce(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn().Err(err).Msg("Scheduled refresh finished with errors")
		}
	}
}

// RunOnce syncs every configured year in order. It keeps going past a
// failing year and returns the joined errors.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	var errs []error
	for _, year := range s.years {
		if err := ctx.Err(); err != nil {
			return err
		}
		run, err := s.syncer.Sync(ctx, year, models.TriggerSchedule)
		if err != nil {
			errs = append(errs, fmt.Errorf("refresh %s: %w", year, err))
			continue
		}
		if run != nil {
			s.logger.Info().
				Str("fin_year", year).
				Str("run_id", run.RunID).
				Int("records", run.Records).
				Msg("Scheduled refresh completed")
		}
	}
	return errors.Join(errs...)
}
