package cache

import (
	"github.com/scalalang2/golang-fifo/sieve"
)

// fifoSieveCache is the golang-fifo SIEVE, kept as an independent reference
// implementation of the same policy.
type fifoSieveCache[K Key] struct {
	c *sieve.Sieve[K, K]
}

// NewFIFOSieve creates a golang-fifo SIEVE cache.
func NewFIFOSieve[K Key](capacity int) Cache[K] {
	return &fifoSieveCache[K]{c: sieve.New[K, K](capacity, 0)}
}

func (c *fifoSieveCache[K]) Get(key K) (K, bool) {
	return c.c.Get(key)
}

func (c *fifoSieveCache[K]) Insert(key, value K) {
	c.c.Set(key, value)
}

func (*fifoSieveCache[K]) Name() string {
	return "golang-fifo-sieve"
}

func (*fifoSieveCache[K]) Close() {}
