package cache

import "github.com/tstromberg/gosieve/sieve"

// shardCount is the number of shards used by the sharded adapter.
const shardCount = 16

type gosieveCache[K Key] struct {
	c *sieve.Cache[K, K]
}

// NewGosieve creates this module's SIEVE cache.
func NewGosieve[K Key](capacity int) Cache[K] {
	return &gosieveCache[K]{c: sieve.MustNew[K, K](capacity)}
}

func (c *gosieveCache[K]) Get(key K) (K, bool) {
	return c.c.Get(key)
}

func (c *gosieveCache[K]) Insert(key, value K) {
	c.c.Insert(key, value)
}

func (*gosieveCache[K]) Name() string {
	return "gosieve"
}

func (*gosieveCache[K]) Close() {}

func (c *gosieveCache[K]) GetOrInsert(key, value K) K {
	v, _ := c.c.GetOrInsert(key, value)
	return v
}

type gosieveShardedCache[K Key] struct {
	c *sieve.Sharded[K, K]
}

// NewGosieveSharded creates this module's sharded SIEVE cache, hashing keys
// with xxh3.
func NewGosieveSharded[K Key](capacity int) Cache[K] {
	c, _ := sieve.NewSharded[K, K](capacity, shardCount, hashKey[K]) //nolint:errcheck // capacity always positive
	return &gosieveShardedCache[K]{c: c}
}

func (c *gosieveShardedCache[K]) Get(key K) (K, bool) {
	return c.c.Get(key)
}

func (c *gosieveShardedCache[K]) Insert(key, value K) {
	c.c.Insert(key, value)
}

func (*gosieveShardedCache[K]) Name() string {
	return "gosieve-sharded"
}

func (*gosieveShardedCache[K]) Close() {}

func (c *gosieveShardedCache[K]) GetOrInsert(key, value K) K {
	v, _ := c.c.GetOrInsert(key, value)
	return v
}
