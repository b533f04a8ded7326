package cache

import (
	"sync"

	"github.com/dgryski/go-s4lru"
)

// s4lruCache guards the segmented LRU, which is not safe for concurrent use.
type s4lruCache struct {
	mu sync.Mutex
	c  *s4lru.Cache
}

// NewS4LRU creates a segmented LRU cache. It only supports string keys.
func NewS4LRU(capacity int) Cache[string] {
	return &s4lruCache{c: s4lru.New(capacity)}
}

func (c *s4lruCache) Get(key string) (string, bool) {
	c.mu.Lock()
	v, ok := c.c.Get(key)
	c.mu.Unlock()
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (c *s4lruCache) Insert(key, value string) {
	c.mu.Lock()
	c.c.Set(key, value)
	c.mu.Unlock()
}

func (*s4lruCache) Name() string {
	return "s4lru"
}

func (*s4lruCache) Close() {}
