package cache

import (
	"github.com/scalalang2/golang-fifo/s3fifo"
)

type s3fifoCache[K Key] struct {
	c *s3fifo.S3FIFO[K, K]
}

// NewS3FIFO creates a golang-fifo S3-FIFO cache.
func NewS3FIFO[K Key](capacity int) Cache[K] {
	return &s3fifoCache[K]{c: s3fifo.New[K, K](capacity, 0)}
}

func (c *s3fifoCache[K]) Get(key K) (K, bool) {
	return c.c.Get(key)
}

func (c *s3fifoCache[K]) Insert(key, value K) {
	c.c.Set(key, value)
}

func (*s3fifoCache[K]) Name() string {
	return "s3-fifo"
}

func (*s3fifoCache[K]) Close() {}
