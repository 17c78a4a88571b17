// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package service answers read queries over stored district metrics, fetching
from upstream on a miss.

The miss path is explicit and bounded:

	rows := store.Read(...)
	if len(rows) == 0 {
	    refresher.Sync(ctx, finYear, models.TriggerRequest) // logged, never returned
	    rows = store.Read(...)
	}

There is no loop: a year the upstream does not have costs one sync per
request and yields an empty list (ListByYear) or ErrNotFound (Detail). Store
errors on reads are returned to the caller; refresh errors are not.

Meta is a pure projection over stored rows and never triggers ingestion. It
is cached for Cache.MetaTTL and cleared by InvalidateCache, which the server
wires to the ingestor's completion callback.
*/
package service
