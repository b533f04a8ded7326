package cache

import "github.com/coocood/freecache"

// defaultEntrySize is a conservative per-entry byte estimate used when the
// workload's entry size is unknown.
const defaultEntrySize = 200

type freecacheCache struct {
	c *freecache.Cache
}

// NewFreecache creates a freecache sized with the default entry estimate.
func NewFreecache(capacity int) Cache[string] {
	return NewFreecacheSized(capacity, defaultEntrySize)
}

// NewFreecacheSized creates a freecache whose byte budget holds capacity
// entries of entrySize bytes (key + value + ~32 bytes of overhead).
func NewFreecacheSized(capacity, entrySize int) Cache[string] {
	cacheBytes := max(capacity*entrySize, 512*1024)
	return &freecacheCache{c: freecache.NewCache(cacheBytes)}
}

func (c *freecacheCache) Get(key string) (string, bool) {
	v, err := c.c.Get([]byte(key))
	if err != nil {
		return "", false
	}
	return string(v), true
}

func (c *freecacheCache) Insert(key, value string) {
	c.c.Set([]byte(key), []byte(value), 0) //nolint:errcheck,gosec // best-effort set
}

func (*freecacheCache) Name() string {
	return "freecache"
}

func (*freecacheCache) Close() {}

func (c *freecacheCache) GetOrInsert(key, value string) string {
	result, _ := c.c.GetOrSet([]byte(key), []byte(value), 0) //nolint:errcheck // best-effort
	if result == nil {
		return value
	}
	return string(result)
}
