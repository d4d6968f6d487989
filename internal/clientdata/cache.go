// Package clientdata provides in-memory caching for external API client responses.
// Entries carry the time they were fetched; reads within the freshness window are
// served without touching the provider, and expired entries remain readable as a
// stale fallback until purged.
package clientdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultFetchTimeout bounds a shared fetch when no other timeout is configured.
const DefaultFetchTimeout = 30 * time.Second

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time

// FetchFunc loads a fresh value for a cache key.
type FetchFunc[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	value    V
	cachedAt time.Time
}

// QuoteCache is a keyed cache with a fixed freshness window.
// It is safe for concurrent use.
type QuoteCache[V any] struct {
	entries map[string]entry[V]
	now     Clock
	group   singleflight.Group
	log     zerolog.Logger
	window  time.Duration
	timeout time.Duration
	mu      sync.RWMutex
}

// NewQuoteCache creates a cache whose entries are fresh for window.
func NewQuoteCache[V any](window time.Duration, log zerolog.Logger) *QuoteCache[V] {
	return &QuoteCache[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
		window:  window,
		timeout: DefaultFetchTimeout,
		log:     log.With().Str("component", "quote_cache").Logger(),
	}
}

// WithClock replaces the time source. Intended for tests.
func (c *QuoteCache[V]) WithClock(clock Clock) *QuoteCache[V] {
	c.mu.Lock()
	c.now = clock
	c.mu.Unlock()
	return c
}

// WithFetchTimeout sets how long a shared fetch may run. Non-positive values are ignored.
func (c *QuoteCache[V]) WithFetchTimeout(d time.Duration) *QuoteCache[V] {
	if d > 0 {
		c.timeout = d
	}
	return c
}

// GetOrFetch returns the cached value for key if it is younger than the freshness
// window. Otherwise it calls fetch, stores the result and returns it.
//
// Concurrent misses for the same key share one fetch call. The fetch runs on a
// context detached from any single caller and bounded by the fetch timeout, so
// one caller giving up does not fail the others; each caller still stops
// waiting when its own ctx is done. A failed fetch leaves any existing entry
// untouched and returns the error.
func (c *QuoteCache[V]) GetOrFetch(ctx context.Context, key string, fetch FetchFunc[V]) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// Another caller may have stored the value while we waited for the slot.
		if v, ok := c.Get(key); ok {
			return v, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		v, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		c.log.Debug().Str("key", key).Msg("Cached fresh value")
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, fmt.Errorf("waiting for %s: %w", key, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(V)
		if !ok {
			return zero, fmt.Errorf("unexpected cached value type for %s", key)
		}
		return v, nil
	}
}

// Get returns the value for key only if it is still fresh.
func (c *QuoteCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.cachedAt) >= c.window {
		var zero V
		return zero, false
	}
	return e.value, true
}

// GetStale returns the value for key regardless of freshness, along with its age.
func (c *QuoteCache[V]) GetStale(key string) (V, time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, 0, false
	}
	return e.value, c.now().Sub(e.cachedAt), true
}

// Set stores value under key stamped with the current time.
func (c *QuoteCache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, cachedAt: c.now()}
	c.mu.Unlock()
}

// Len returns the number of stored entries, fresh or not.
func (c *QuoteCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge removes entries older than maxAge and returns how many were removed.
func (c *QuoteCache[V]) Purge(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.cachedAt) > maxAge {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
