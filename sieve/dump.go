package sieve

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes the cache contents from head to tail, one entry per line,
// with each entry's visited flag. The hand is marked with '>'.
func (c *Cache[K, V]) Dump(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := fmt.Fprintf(w, "sieve: len %d, cap %d\n", c.list.len(), c.capacity); err != nil {
		return err
	}

	var werr error
	err := c.list.walk(func(h handle, e *entry[K, V]) bool {
		mark := ' '
		if h == c.hand {
			mark = '>'
		}
		_, werr = fmt.Fprintf(w, "%c key=%v value=%v visited=%t\n", mark, e.key, e.value, e.visited.Load())
		return werr == nil
	})
	invariant(err, "dump")
	return werr
}

func (c *Cache[K, V]) String() string {
	var b strings.Builder
	_ = c.Dump(&b)
	return b.String()
}
