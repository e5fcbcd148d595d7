// SPDX-License-Identifier: MIT

// Package cache stores rendered pages with a TTL, in memory or in Redis.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Cache is a byte cache with expiration. Lookups never fail: backend
// errors count as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	// Clear drops every entry this cache owns.
	Clear(ctx context.Context)
	Stats() Stats
	Close() error
}

// Stats holds cache counters.
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Sets        int64 `json:"sets"`
	Evictions   int64 `json:"evictions"`
	CurrentSize int   `json:"currentSize"`
}

type counters struct {
	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	evictions atomic.Int64
}

func (c *counters) snapshot(size int) Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Sets:        c.sets.Load(),
		Evictions:   c.evictions.Load(),
		CurrentSize: size,
	}
}

type entry struct {
	value      []byte
	expiration time.Time
}

func (e *entry) expired(now time.Time) bool {
	return now.After(e.expiration)
}

// MemoryCache is an in-process Cache with a background janitor.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	stats   counters
	now     func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewMemoryCache creates a cache whose janitor removes expired entries
// every cleanupInterval. A non-positive interval disables the janitor.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]*entry),
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go c.janitor(cleanupInterval)
	} else {
		close(c.done)
	}
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()

	if !found || e.expired(c.now()) {
		c.stats.misses.Add(1)
		return nil, false
	}
	c.stats.hits.Add(1)
	return e.value, true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = &entry{value: value, expiration: c.now().Add(ttl)}
	c.mu.Unlock()
	c.stats.sets.Add(1)
}

func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *MemoryCache) Clear(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

func (c *MemoryCache) Stats() Stats {
	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()
	return c.stats.snapshot(size)
}

// deleteExpired removes expired entries and returns how many went.
func (c *MemoryCache) deleteExpired() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			count++
		}
	}
	c.stats.evictions.Add(int64(count))
	return count
}

// Close stops the janitor and waits for it to exit.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
	return nil
}

func (c *MemoryCache) janitor(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-c.stop:
			return
		}
	}
}

type noOpCache struct{}

// NewNoOpCache returns a cache that stores nothing.
func NewNoOpCache() Cache { return noOpCache{} }

func (noOpCache) Get(context.Context, string) ([]byte, bool) {
	return nil, false
}

func (noOpCache) Set(context.Context, string, []byte, time.Duration) {}

func (noOpCache) Delete(context.Context, string) {}

func (noOpCache) Clear(context.Context) {}

func (noOpCache) Stats() Stats {
	return Stats{}
}

func (noOpCache) Close() error {
	return nil
}
