package cache

import lru "github.com/hashicorp/golang-lru/v2"

type lruCache[K Key] struct {
	c *lru.Cache[K, K]
}

// NewLRU creates a hashicorp LRU cache.
func NewLRU[K Key](capacity int) Cache[K] {
	c, _ := lru.New[K, K](capacity) //nolint:errcheck // capacity always positive
	return &lruCache[K]{c: c}
}

func (c *lruCache[K]) Get(key K) (K, bool) {
	return c.c.Get(key)
}

func (c *lruCache[K]) Insert(key, value K) {
	c.c.Add(key, value)
}

func (*lruCache[K]) Name() string {
	return "lru"
}

func (*lruCache[K]) Close() {}

type twoQueueCache[K Key] struct {
	c *lru.TwoQueueCache[K, K]
}

// NewTwoQueue creates a hashicorp 2Q cache.
func NewTwoQueue[K Key](capacity int) Cache[K] {
	c, _ := lru.New2Q[K, K](capacity) //nolint:errcheck // capacity always positive
	return &twoQueueCache[K]{c: c}
}

func (c *twoQueueCache[K]) Get(key K) (K, bool) {
	return c.c.Get(key)
}

func (c *twoQueueCache[K]) Insert(key, value K) {
	c.c.Add(key, value)
}

func (*twoQueueCache[K]) Name() string {
	return "2q"
}

func (*twoQueueCache[K]) Close() {}
