package cache

import (
	"sync"
	"time"
)

// Cache interface for caching system
type Cache[V any] interface {
	// Get retrieves a value from cache
	Get(key string) (V, bool)

	// Set sets a value in cache with TTL
	Set(key string, value V, ttl time.Duration)

	// Delete removes a value from cache
	Delete(key string)

	// Exists checks if a key exists
	Exists(key string) bool

	// Clear clears all cache
	Clear()

	// Len returns the number of live entries
	Len() int
}

var _ Cache[int] = (*TTLCache[int])(nil)

// TTLCache is an in-memory Cache with per-entry expiry
type TTLCache[V any] struct {
	items map[string]cacheItem[V]
	mu    sync.RWMutex
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

type cacheItem[V any] struct {
	value     V
	expiredAt time.Time
}

// New creates an in-memory cache. A positive cleanupInterval starts a
// routine that drops expired entries until Close is called.
func New[V any](cleanupInterval time.Duration) *TTLCache[V] {
	c := &TTLCache[V]{
		items: make(map[string]cacheItem[V]),
		now:   time.Now,
		stop:  make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go c.cleanup(cleanupInterval)
	}

	return c
}

// Get retrieves a value from cache
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}

	if c.now().After(item.expiredAt) {
		c.deleteIfExpired(key)
		return zero, false
	}

	return item.value, true
}

// deleteIfExpired re-checks under the write lock so a value Set after the
// expired read is kept.
func (c *TTLCache[V]) deleteIfExpired(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, exists := c.items[key]; exists && c.now().After(item.expiredAt) {
		delete(c.items, key)
	}
}

// Set sets a value in cache with TTL
func (c *TTLCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheItem[V]{
		value:     value,
		expiredAt: c.now().Add(ttl),
	}
}

// Delete removes a value from cache
func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Exists checks if a key exists
func (c *TTLCache[V]) Exists(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Clear clears all cache
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]cacheItem[V])
}

// Len returns the number of entries that have not expired
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	n := 0
	for _, item := range c.items {
		if !now.After(item.expiredAt) {
			n++
		}
	}
	return n
}

// Close stops the cleanup routine
func (c *TTLCache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

// cleanup runs periodically to remove expired items
func (c *TTLCache[V]) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *TTLCache[V]) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, item := range c.items {
		if now.After(item.expiredAt) {
			delete(c.items, key)
		}
	}
}
