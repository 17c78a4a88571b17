// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockScheduler struct {
	startErr error
	stopErr  error
	starts   atomic.Int32
	stops    atomic.Int32
}

func (m *mockScheduler) Start(context.Context) error {
	m.starts.Add(1)
	return m.startErr
}

func (m *mockScheduler) Stop() error {
	m.stops.Add(1)
	return m.stopErr
}

func TestRefreshService_StartThenStop(t *testing.T) {
	t.Parallel()

	sched := &mockScheduler{}
	svc := NewRefreshService(sched)
	if svc.String() != "refresh-scheduler" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(time.Second)
	for sched.starts.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if sched.starts.Load() != 1 || sched.stops.Load() != 1 {
		t.Errorf("starts=%d stops=%d, want 1/1", sched.starts.Load(), sched.stops.Load())
	}
}

func TestRefreshService_StartFailure(t *testing.T) {
	t.Parallel()

	startErr := errors.New("already running")
	sched := &mockScheduler{startErr: startErr}

	err := NewRefreshService(sched).Serve(context.Background())
	if !errors.Is(err, startErr) {
		t.Errorf("Serve() = %v, want %v", err, startErr)
	}
	if sched.stops.Load() != 0 {
		t.Error("Stop should not be called after a failed Start")
	}
}

func TestRefreshService_StopFailure(t *testing.T) {
	t.Parallel()

	stopErr := errors.New("stuck")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRefreshService(&mockScheduler{stopErr: stopErr}).Serve(ctx)
	if !errors.Is(err, stopErr) {
		t.Errorf("Serve() = %v, want %v", err, stopErr)
	}
}
