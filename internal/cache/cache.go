// file: internal/cache/cache.go
// version: 1.1.0
// guid: b4d6f8a0-1c3e-45b7-92d4-6e8f0a2c4b17

// Package cache provides a small generic TTL cache used to avoid re-fetching
// remote search responses for repeated queries.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is a generic TTL cache safe for concurrent use. Expired entries are
// dropped lazily on read and swept on Set.
type Cache[T any] struct {
	mu         sync.RWMutex
	items      map[string]entry[T]
	defaultTTL time.Duration
}

// New creates a cache with the given default TTL.
func New[T any](defaultTTL time.Duration) *Cache[T] {
	return &Cache[T]{
		items:      make(map[string]entry[T]),
		defaultTTL: defaultTTL,
	}
}

// Get retrieves a value if present and not expired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores a value with the default TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores a value with a specific TTL and opportunistically sweeps
// expired entries.
func (c *Cache[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	now := time.Now()
	c.mu.Lock()
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
		}
	}
	c.items[key] = entry[T]{value: value, expiresAt: now.Add(ttl)}
	c.mu.Unlock()
}

// Invalidate removes a single key.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// InvalidateAll removes every entry.
func (c *Cache[T]) InvalidateAll() {
	c.mu.Lock()
	c.items = make(map[string]entry[T])
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
