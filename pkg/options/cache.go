package options

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Key identifies one cached options instance: the option type, the optional
// instance name (empty for the default instance), and the tenant.
type Key struct {
	Type     string
	Name     string
	TenantID string
}

// flightKey serializes the key for singleflight grouping. The unit separator
// keeps distinct keys distinct even when components contain dots or dashes.
func (k Key) flightKey() string {
	return k.Type + "\x1f" + k.Name + "\x1f" + k.TenantID
}

type cacheEntry struct {
	value any
	gen   uint64
}

// Cache stores fully resolved options instances keyed by
// (type, name, tenant). Entries are created lazily on first resolution and
// evicted only by explicit invalidation.
//
// Concurrent misses for the same key are collapsed through a singleflight
// group so the factory runs once per flight; the first completed write is
// the durable value for all subsequent callers. A failed factory leaves no
// entry behind, so the next caller retries the full factory path.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]cacheEntry
	gen     atomic.Uint64
	group   singleflight.Group
}

// NewCache creates an empty multiplexed instance cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[Key]cacheEntry)}
}

// GetOrCreate returns the cached value for key, invoking factory to produce
// it on a miss. The factory never runs while the cache lock is held.
func (c *Cache) GetOrCreate(key Key, factory func() (any, error)) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return e.value, nil
	}

	v, err, _ := c.group.Do(key.flightKey(), func() (any, error) {
		// Another flight may have populated the entry between the fast
		// path and this call.
		c.mu.RLock()
		e, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return e.value, nil
		}

		v, err := factory()
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("options cache: factory returned nil for %s %q", key.Type, key.Name)
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if e, ok := c.entries[key]; ok {
			// First durable write wins; discard the duplicate result.
			return e.value, nil
		}
		c.entries[key] = cacheEntry{value: v, gen: c.gen.Add(1)}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Get returns the cached value for key without populating on a miss.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e.value, ok
}

// Generation reports the insertion generation of the entry for key.
// A higher generation after invalidation proves the entry was rebuilt.
func (c *Cache) Generation(key Key) (uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e.gen, ok
}

// Invalidate removes one entry.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateTenant removes all entries for the given tenant across all
// option types and names.
func (c *Cache) InvalidateTenant(tenantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.TenantID == tenantID {
			delete(c.entries, key)
		}
	}
}

// InvalidateType removes all entries for the given option type across all
// tenants and names.
func (c *Cache) InvalidateType(optionType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.Type == optionType {
			delete(c.entries, key)
		}
	}
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
