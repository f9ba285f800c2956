package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a resolved lookup stays valid.
const DefaultTTL = 30 * time.Minute

// cacheEntry holds a cached value and the time it was stored.
type cacheEntry struct {
	value    any
	storedAt time.Time
}

// MemoryCache is a process-wide key/value store whose entries go stale after a fixed TTL.
// Staleness is checked on read; stale entries stay in the map until overwritten.
type MemoryCache struct {
	entries map[string]cacheEntry
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a MemoryCache.
type Option func(*MemoryCache)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *MemoryCache) { c.ttl = ttl }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *MemoryCache) { c.now = now }
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache(opts ...Option) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]cacheEntry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key, unless it is missing or older than the TTL.
func (c *MemoryCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[key]
	if !found || c.now().Sub(entry.storedAt) >= c.ttl {
		return nil, false
	}
	return entry.value, true
}

// Put stores value under key, replacing any previous entry.
func (c *MemoryCache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:    value,
		storedAt: c.now(),
	}
}

// Len returns the number of entries in the cache, stale ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL returns the configured time-to-live.
func (c *MemoryCache) TTL() time.Duration {
	return c.ttl
}
