package sieve

import "sync"

// Cache is a fixed-capacity SIEVE cache. It is safe for concurrent use.
//
// Lookups take a shared lock and only flip the entry's visited flag.
// Insertion, eviction and removal take the exclusive lock, so the list and
// the hand are never observed mid-update.
type Cache[K comparable, V any] struct {
	mu       sync.RWMutex
	capacity int
	arena    *arena[K, V]
	list     list[K, V]
	index    index[K]
	hand     handle
	onEvict  func(K, V)
	stats    counters
}

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithEvictionCallback registers fn to run after an entry is evicted for
// capacity. fn runs with the cache locked and must not call back into it.
// Explicit removals do not trigger it.
func WithEvictionCallback[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.onEvict = fn
	}
}

// New returns an empty cache holding at most capacity entries.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	a := newArena[K, V](capacity)
	c := &Cache[K, V]{
		capacity: capacity,
		arena:    a,
		list:     list[K, V]{arena: a},
		index:    newIndex[K](capacity),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNew is like New but panics on an invalid capacity.
func MustNew[K comparable, V any](capacity int, opts ...Option[K, V]) *Cache[K, V] {
	c, err := New(capacity, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the value for key and marks the entry visited.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	h, ok := c.index.lookup(key)
	if !ok {
		c.stats.misses.Add(1)
		var zero V
		return zero, false
	}

	e, err := c.arena.get(h)
	invariant(err, "get")
	if !e.visited.Load() {
		e.visited.Store(true)
	}
	c.stats.hits.Add(1)
	return e.value, true
}

// Peek returns the value for key without marking it visited.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	h, ok := c.index.lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	e, err := c.arena.get(h)
	invariant(err, "peek")
	return e.value, true
}

// Contains reports whether key is cached, without marking it visited.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.RLock()
	_, ok := c.index.lookup(key)
	c.mu.RUnlock()
	return ok
}

// Insert stores value under key. An existing entry only has its value
// replaced: it keeps its queue position and visited flag. A new key is
// added at the head, evicting one entry first if the cache is full.
func (c *Cache[K, V]) Insert(key K, value V) {
	c.mu.Lock()
	c.insert(key, value)
	c.mu.Unlock()
}

// GetOrInsert returns the cached value for key, marking it visited, if
// present. Otherwise it inserts value and returns it with false.
func (c *Cache[K, V]) GetOrInsert(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.index.lookup(key); ok {
		e, err := c.arena.get(h)
		invariant(err, "get-or-insert")
		if !e.visited.Load() {
			e.visited.Store(true)
		}
		c.stats.hits.Add(1)
		return e.value, true
	}

	c.stats.misses.Add(1)
	c.insert(key, value)
	return value, false
}

func (c *Cache[K, V]) insert(key K, value V) {
	if h, ok := c.index.lookup(key); ok {
		e, err := c.arena.get(h)
		invariant(err, "update")
		e.value = value
		c.stats.updates.Add(1)
		return
	}

	if c.list.len() >= c.capacity {
		c.evict()
	}

	h := c.arena.allocate(key, value)
	invariant(c.list.pushFront(h), "insert")
	c.index.insert(key, h)
	c.stats.inserts.Add(1)
}

// evict removes exactly one entry. The scan resumes from the hand, walks
// toward the head clearing visited flags, wraps to the tail, and stops at
// the first unvisited entry. The hand is left on the victim's predecessor.
// Callers hold the exclusive lock.
func (c *Cache[K, V]) evict() {
	h := c.hand
	if !h.valid() || h == c.list.front() {
		h = c.list.back()
	}

	scanned := 0
	for {
		if !h.valid() {
			invariant(ErrEmptyEviction, "evict")
		}
		e, err := c.arena.get(h)
		invariant(err, "evict")
		scanned++

		if !e.visited.Load() {
			prev := e.prev
			key, value := e.key, e.value
			c.drop(h, key)
			c.hand = prev

			c.stats.evictions.Add(1)
			c.stats.scanned.Add(uint64(scanned)) //nolint:gosec // scanned is positive
			c.stats.lastScan.Store(int64(scanned))
			if c.onEvict != nil {
				c.onEvict(key, value)
			}
			return
		}

		e.visited.Store(false)
		if h == c.list.front() {
			h = c.list.back()
		} else {
			h = e.prev
		}
	}
}

// drop unlinks, unindexes and frees h in that order.
func (c *Cache[K, V]) drop(h handle, key K) {
	invariant(c.list.unlink(h), "unlink")
	c.index.remove(key)
	invariant(c.arena.free(h), "free")
}

// Remove deletes key and reports whether it was present.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.index.lookup(key)
	if !ok {
		return false
	}
	if h == c.hand {
		prev, err := c.list.prevOf(h)
		invariant(err, "remove")
		c.hand = prev
	}
	c.drop(h, key)
	c.stats.removals.Add(1)
	return true
}

// Purge removes every entry. Capacity and statistics are kept.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.list.walk(func(h handle, e *entry[K, V]) bool {
		c.drop(h, e.key)
		return true
	})
	invariant(err, "purge")
	c.hand = noHandle
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.list.len()
}

// Cap returns the maximum number of entries.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// Keys returns the cached keys from newest to oldest.
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, c.list.len())
	err := c.list.walk(func(_ handle, e *entry[K, V]) bool {
		keys = append(keys, e.key)
		return true
	})
	invariant(err, "keys")
	return keys
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	return c.stats.snapshot()
}
