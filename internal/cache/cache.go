// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/rozgar/internal/metrics"
)

// sweepThreshold is the entry count above which Set sweeps expired entries.
const sweepThreshold = 64

type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache is a thread-safe map with per-entry expiry.
type Cache[V any] struct {
	name    string
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache. name labels the cache in metrics.
func New[V any](name string, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		name:    name,
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value for key if present and not expired. Expired entries
// are removed and counted as misses.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		metrics.RecordCacheLookup(c.name, false)
		return zero, false
	}

	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if current, ok := c.entries[key]; ok && c.now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		metrics.RecordCacheLookup(c.name, false)
		return zero, false
	}

	metrics.RecordCacheLookup(c.name, true)
	return e.data, true
}

// Set stores value with the cache TTL. A non-positive TTL makes it a no-op.
func (c *Cache[V]) Set(key string, value V) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.entries) >= sweepThreshold {
		c.sweepLocked(now)
	}
	c.entries[key] = entry[V]{data: value, expiresAt: now.Add(c.ttl)}
}

// Clear removes all entries, typically after a sync wrote new rows.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// sweepLocked drops expired entries. Caller holds c.mu.
func (c *Cache[V]) sweepLocked(now time.Time) {
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
