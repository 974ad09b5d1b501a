package ttlcache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a ttl-bounded map safe for concurrent use. Expired entries
// are evicted lazily on read, there is no background sweep; key growth
// is bounded by the caller's key cardinality.
type Cache[V any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry[V]
}

func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]entry[V]{},
	}
}

// SetClock replaces the time source, for tests.
func (c *Cache[V]) SetClock(now func() time.Time) {
	c.now = now
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	item, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().After(item.expiresAt) {
		delete(c.entries, key)
		return zero, false
	}
	return item.value, true
}

func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}
