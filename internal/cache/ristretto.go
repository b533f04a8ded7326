package cache

import "github.com/dgraph-io/ristretto"

type ristrettoCache[K Key] struct {
	c *ristretto.Cache
}

// NewRistretto creates a Ristretto cache with unit cost per entry.
func NewRistretto[K Key](capacity int) Cache[K] {
	c, _ := ristretto.NewCache(&ristretto.Config{ //nolint:errcheck // config always valid
		NumCounters:        int64(capacity) * 10,
		MaxCost:            int64(capacity),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	return &ristrettoCache[K]{c: c}
}

func (c *ristrettoCache[K]) Get(key K) (K, bool) {
	v, ok := c.c.Get(key)
	if !ok {
		var zero K
		return zero, false
	}
	return v.(K), true //nolint:errcheck,revive // type is known from Insert
}

func (c *ristrettoCache[K]) Insert(key, value K) {
	c.c.Set(key, value, 1)
}

func (*ristrettoCache[K]) Name() string {
	return "ristretto"
}

// Sync waits for buffered sets to be applied.
func (c *ristrettoCache[K]) Sync() {
	c.c.Wait()
}

func (c *ristrettoCache[K]) Close() {
	c.c.Wait()
	c.c.Close()
}
