package cache

import "github.com/vmihailenco/go-tinylfu"

type tinyLFUCache struct {
	c *tinylfu.SyncT
}

// NewTinyLFU creates a TinyLFU cache. It only supports string keys.
func NewTinyLFU(capacity int) Cache[string] {
	return &tinyLFUCache{c: tinylfu.NewSync(capacity, capacity*10)}
}

func (c *tinyLFUCache) Get(key string) (string, bool) {
	v, ok := c.c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (c *tinyLFUCache) Insert(key, value string) {
	c.c.Set(&tinylfu.Item{Key: key, Value: value})
}

func (*tinyLFUCache) Name() string {
	return "tinylfu"
}

func (*tinyLFUCache) Close() {}
