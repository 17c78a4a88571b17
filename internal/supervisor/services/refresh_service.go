// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package services

import (
	"context"
	"fmt"
)

// RefreshScheduler is the Start/Stop lifecycle of *refresh.Scheduler.
type RefreshScheduler interface {
	Start(ctx context.Context) error
	Stop() error
}

// RefreshService adapts the refresh scheduler to suture's Serve pattern:
// Start, wait for the context, Stop.
type RefreshService struct {
	scheduler RefreshScheduler
	name      string
}

// NewRefreshService wraps scheduler for the data layer.
func NewRefreshService(scheduler RefreshScheduler) *RefreshService {
	return &RefreshService{
		scheduler: scheduler,
		name:      "refresh-scheduler",
	}
}

// Serve implements suture.Service. A Start failure is returned at once so
// suture restarts the service with backoff.
func (s *RefreshService) Serve(ctx context.Context) error {
	if err := s.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("refresh scheduler start failed: %w", err)
	}

	<-ctx.Done()

	if err := s.scheduler.Stop(); err != nil {
		return fmt.Errorf("refresh scheduler stop failed: %w", err)
	}
	return ctx.Err()
}

func (s *RefreshService) String() string {
	return s.name
}
