// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package cache provides a thread-safe in-memory TTL cache for store projections.

The query service caches the /api/meta projection (distinct financial years
and districts) because it is read on every dashboard load and only changes
when an ingestion run writes rows. The ingestor's completion callback clears
the cache, so a TTL bounds staleness only for writes made by another process
sharing the same store.

# Overview

  - Generic over the value type: Cache[V]
  - Lazy expiration on Get, plus a sweep of expired entries on Set
  - No background goroutines
  - Hits and misses exported to Prometheus under the cache's name

# Usage Example

	meta := cache.New[*models.Meta]("meta", 5*time.Minute)
	if m, ok := meta.Get("meta"); ok {
	    return m, nil
	}
	m := buildMeta()
	meta.Set("meta", m)

	// after a sync
	meta.Clear()

A TTL of zero or less disables caching: Set is a no-op and every Get misses.
*/
package cache
