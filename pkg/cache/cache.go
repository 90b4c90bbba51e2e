package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// Cache is a concurrency safe map whose entries can carry a time to live.
// Expired entries are invisible to readers and dropped by Purge.
type Cache[K comparable, V any] struct {
	entries map[K]entry[V]
	mu      sync.RWMutex
	now     func() time.Time
}

func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]entry[V]),
		now:     time.Now,
	}
}

// Set stores a value that never expires.
func (c *Cache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, 0)
}

// SetWithTTL stores a value that expires after ttl. A ttl <= 0 never expires.
func (c *Cache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry[V]{value: value}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries[key] = e
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || e.expired(c.now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Size counts the entries that have not expired.
func (c *Cache[K, V]) Size() int {
	return len(c.Keys())
}

// Keys returns the keys of entries that have not expired, in no particular order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	keys := make([]K, 0, len(c.entries))
	for k, e := range c.entries {
		if e.expired(now) {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache[K, V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}
