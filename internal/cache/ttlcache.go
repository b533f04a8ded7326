package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

type ttlcacheCache[K Key] struct {
	c *ttlcache.Cache[K, K]
}

// NewTTLCache creates a ttlcache bounded by entry count. The TTL is long
// enough that only capacity drives eviction.
func NewTTLCache[K Key](capacity int) Cache[K] {
	c := ttlcache.New[K, K](
		ttlcache.WithCapacity[K, K](uint64(capacity)), //nolint:gosec // capacity always positive
		ttlcache.WithTTL[K, K](time.Hour),
	)
	go c.Start()
	return &ttlcacheCache[K]{c: c}
}

func (c *ttlcacheCache[K]) Get(key K) (K, bool) {
	item := c.c.Get(key)
	if item == nil {
		var zero K
		return zero, false
	}
	return item.Value(), true
}

func (c *ttlcacheCache[K]) Insert(key, value K) {
	c.c.Set(key, value, ttlcache.DefaultTTL)
}

func (*ttlcacheCache[K]) Name() string {
	return "ttlcache"
}

func (c *ttlcacheCache[K]) Close() {
	c.c.Stop()
}

func (c *ttlcacheCache[K]) GetOrInsert(key, value K) K {
	item, _ := c.c.GetOrSet(key, value)
	return item.Value()
}
