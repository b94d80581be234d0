package cache

import (
	"context"
	"sync"
	"time"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

type memoryEntry struct {
	state     models.WorkflowState
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache. Expired entries are evicted lazily
// on read; CleanupExpired sweeps the rest.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	hits    int64
	misses  int64

	// now is swapped in tests to exercise expiry without sleeping.
	now func() time.Time
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the cached state if present and unexpired.
func (c *MemoryCache) Get(_ context.Context, key string) (*models.WorkflowState, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false, nil
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		c.misses++
		return nil, false, nil
	}
	c.hits++
	cp := e.state
	cp.StateData = copyData(e.state.StateData)
	return &cp, true, nil
}

// Set stores a copy of state under key for ttl.
func (c *MemoryCache) Set(_ context.Context, key string, state *models.WorkflowState, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp := *state
	cp.StateData = copyData(state.StateData)
	c.entries[key] = memoryEntry{state: cp, expiresAt: c.now().Add(ttl)}
	return nil
}

// Delete removes key from the cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// CleanupExpired removes all expired entries and reports how many were
// evicted.
func (c *MemoryCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Stats returns hit/miss counters and the live entry count.
func (c *MemoryCache) Stats(_ context.Context) (Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Entries: int64(len(c.entries)),
		HitRate: hitRate(c.hits, c.misses),
	}, nil
}

// Close is a no-op for the in-process cache.
func (c *MemoryCache) Close() error { return nil }

func copyData(data map[models.DataKey]string) map[models.DataKey]string {
	if data == nil {
		return nil
	}
	cp := make(map[models.DataKey]string, len(data))
	for k, v := range data {
		cp[k] = v
	}
	return cp
}
