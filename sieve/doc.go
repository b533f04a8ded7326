// Package sieve implements a fixed-capacity key-value cache using the SIEVE
// eviction algorithm.
//
// Entries sit in a single FIFO queue, newest at the head. A lookup sets the
// entry's visited bit and nothing else. When the cache is full, a persistent
// hand walks from the tail toward the head, clearing visited bits until it
// finds an unvisited entry to evict. The hand stays where it stopped, so
// sustained eviction pressure only rescans an entry once per rotation.
//
// Entries live in an arena and are addressed by generation-checked handles
// rather than pointers, so a stale reference fails loudly instead of
// touching a recycled entry.
//
//	c, err := sieve.New[string, int](1024)
//	if err != nil {
//		return err
//	}
//	c.Insert("a", 1)
//	v, ok := c.Get("a")
package sieve
