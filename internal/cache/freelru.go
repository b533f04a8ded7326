package cache

import (
	lru "github.com/elastic/go-freelru"
)

type freeLRUSyncedCache[K Key] struct {
	c *lru.SyncedLRU[K, K]
}

// NewFreeLRUSynced creates a single-lock freelru cache.
func NewFreeLRUSynced[K Key](capacity int) Cache[K] {
	c, _ := lru.NewSynced[K, K](uint32(capacity), hashKey32[K]) //nolint:errcheck,gosec // capacity always positive
	return &freeLRUSyncedCache[K]{c: c}
}

func (c *freeLRUSyncedCache[K]) Get(key K) (K, bool) {
	return c.c.Get(key)
}

func (c *freeLRUSyncedCache[K]) Insert(key, value K) {
	c.c.Add(key, value)
}

func (*freeLRUSyncedCache[K]) Name() string {
	return "freelru-sync"
}

func (*freeLRUSyncedCache[K]) Close() {}

type freeLRUShardedCache[K Key] struct {
	c *lru.ShardedLRU[K, K]
}

// NewFreeLRUSharded creates a sharded freelru cache.
func NewFreeLRUSharded[K Key](capacity int) Cache[K] {
	c, _ := lru.NewSharded[K, K](uint32(capacity), hashKey32[K]) //nolint:errcheck,gosec // capacity always positive
	return &freeLRUShardedCache[K]{c: c}
}

func (c *freeLRUShardedCache[K]) Get(key K) (K, bool) {
	return c.c.Get(key)
}

func (c *freeLRUShardedCache[K]) Insert(key, value K) {
	c.c.Add(key, value)
}

func (*freeLRUShardedCache[K]) Name() string {
	return "freelru-shard"
}

func (*freeLRUShardedCache[K]) Close() {}
