// Package cache holds the response cache backends for the broker client.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/broker"
)

// MemoryCache keeps entries in process. It is the default backend for a
// single gateway instance.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]broker.CachedEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]broker.CachedEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (broker.CachedEntry, bool, error) {
	c.mu.RLock()
	entry, found := c.entries[key]
	c.mu.RUnlock()

	if !found {
		return broker.CachedEntry{}, false, nil
	}
	if entry.Expired(c.now()) {
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && current.StoredAt.Equal(entry.StoredAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return broker.CachedEntry{}, false, nil
	}
	return entry, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, result broker.Result, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = broker.CachedEntry{
		Result:   result,
		StoredAt: c.now(),
		TTL:      ttl,
	}
	return nil
}

// PurgeExpired drops every expired entry and returns how many were removed.
func (c *MemoryCache) PurgeExpired(ctx context.Context) (int, error) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
