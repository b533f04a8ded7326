package cache

import (
	"sync"

	"github.com/Code-Hex/go-generics-cache/policy/clock"
)

// clockCache guards the CLOCK policy, which is not safe for concurrent use.
type clockCache[K Key] struct {
	mu sync.Mutex
	c  *clock.Cache[K, K]
}

// NewClock creates a CLOCK cache, SIEVE's closest relative.
func NewClock[K Key](capacity int) Cache[K] {
	return &clockCache[K]{c: clock.NewCache[K, K](clock.WithCapacity(capacity))}
}

func (c *clockCache[K]) Get(key K) (K, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.Get(key)
}

func (c *clockCache[K]) Insert(key, value K) {
	c.mu.Lock()
	c.c.Set(key, value)
	c.mu.Unlock()
}

func (*clockCache[K]) Name() string {
	return "clock"
}

func (*clockCache[K]) Close() {}
