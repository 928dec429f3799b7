package utils

import (
	"context"
	"sync"
	"time"
)

// CacheEntry represents a cached value with expiration
type CacheEntry[V any] struct {
	Value     V
	ExpiresAt time.Time
}

// IsExpired checks if the cache entry has expired
func (e *CacheEntry[V]) IsExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Cache is an in-memory cache with TTL support
type Cache[V any] struct {
	data       map[string]*CacheEntry[V]
	mutex      sync.RWMutex
	defaultTTL time.Duration
	now        func() time.Time
}

// NewCache creates a new in-memory cache
func NewCache[V any](defaultTTL time.Duration) *Cache[V] {
	return &Cache[V]{
		data:       make(map[string]*CacheEntry[V]),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get retrieves a value from the cache. Expired entries are treated as missing.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mutex.RLock()
	entry, exists := c.data[key]
	c.mutex.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}
	if entry.IsExpired(c.now()) {
		c.mutex.Lock()
		if current, ok := c.data[key]; ok && current == entry {
			delete(c.data, key)
		}
		c.mutex.Unlock()
		return zero, false
	}
	return entry.Value, true
}

// Set stores a value in the cache with default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores a value in the cache with custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = &CacheEntry[V]{
		Value:     value,
		ExpiresAt: c.now().Add(ttl),
	}
}

// Delete removes a value from the cache
func (c *Cache[V]) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.data, key)
}

// Clear removes all entries from the cache
func (c *Cache[V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]*CacheEntry[V])
}

// Size returns the number of items in the cache
func (c *Cache[V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// StartCleanup removes expired entries every interval until ctx is done.
func (c *Cache[V]) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.removeExpired()
			}
		}
	}()
}

func (c *Cache[V]) removeExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	for key, entry := range c.data {
		if entry.IsExpired(now) {
			delete(c.data, key)
		}
	}
}
