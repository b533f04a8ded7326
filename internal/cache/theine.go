package cache

import "github.com/Yiling-J/theine-go"

type theineCache[K Key] struct {
	c *theine.Cache[K, K]
}

// NewTheine creates a Theine cache with unit cost per entry.
func NewTheine[K Key](capacity int) Cache[K] {
	c, _ := theine.NewBuilder[K, K](int64(capacity)).Build() //nolint:errcheck // capacity always positive
	return &theineCache[K]{c: c}
}

func (c *theineCache[K]) Get(key K) (K, bool) {
	return c.c.Get(key)
}

func (c *theineCache[K]) Insert(key, value K) {
	c.c.Set(key, value, 1)
}

func (*theineCache[K]) Name() string {
	return "theine"
}

func (c *theineCache[K]) Close() {
	c.c.Close()
}
