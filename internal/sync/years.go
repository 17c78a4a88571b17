// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package sync

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/rozgar/internal/models"
)

// YearResult is the outcome of one year in a multi-year sync.
type YearResult struct {
	FinYear string
	Run     *models.SyncRun
	Err     error
}

// SyncYears ingests several financial years with at most concurrency runs
// in flight. A failing year does not cancel the others. Results keep the
// order of years.
func (i *Ingestor) SyncYears(ctx context.Context, years []string, trigger models.SyncTrigger, concurrency int) []YearResult {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]YearResult, len(years))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for idx, year := range years {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[idx] = YearResult{FinYear: year, Err: err}
				return nil
			}
			run, err := i.Sync(ctx, year, trigger)
			results[idx] = YearResult{FinYear: year, Run: run, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// AllFailed reports whether no year in results finished cleanly or partially.
func AllFailed(results []YearResult) bool {
	for _, r := range results {
		if r.Run == nil {
			continue
		}
		switch r.Run.Status {
		case models.SyncStatusSuccess, models.SyncStatusPartial:
			return false
		}
	}
	return true
}
