package cache

import (
	"context"

	"github.com/maypok86/otter/v2"
)

// constLoader loads a fixed value, turning otter's loading Get into a
// get-or-insert.
type constLoader[K Key] struct {
	value K
}

func (l *constLoader[K]) Load(_ context.Context, _ K) (K, error) {
	return l.value, nil
}

func (l *constLoader[K]) Reload(_ context.Context, _ K, _ K) (K, error) {
	return l.value, nil
}

type otterCache[K Key] struct {
	c *otter.Cache[K, K]
}

// NewOtter creates an Otter cache.
func NewOtter[K Key](capacity int) Cache[K] {
	return &otterCache[K]{c: otter.Must(&otter.Options[K, K]{MaximumSize: capacity})}
}

func (c *otterCache[K]) Get(key K) (K, bool) {
	return c.c.GetIfPresent(key)
}

func (c *otterCache[K]) Insert(key, value K) {
	c.c.Set(key, value)
}

func (*otterCache[K]) Name() string {
	return "otter"
}

func (*otterCache[K]) Close() {}

func (c *otterCache[K]) GetOrInsert(key, value K) K {
	result, _ := c.c.Get(context.Background(), key, &constLoader[K]{value: value}) //nolint:errcheck // loader never fails
	return result
}
