package sieve

import "errors"

// ErrInvalidShards is returned by NewSharded for a non-positive shard
// count or a nil hash function.
var ErrInvalidShards = errors.New("sieve: invalid shard configuration")

// Sharded spreads keys over independent Cache shards to reduce lock
// contention. Each shard runs its own SIEVE queue and hand, so eviction is
// per shard rather than global.
type Sharded[K comparable, V any] struct {
	shards   []*Cache[K, V]
	hash     func(K) uint64
	capacity int
}

// NewSharded splits capacity over the given number of shards. Shards beyond
// capacity are dropped so every shard holds at least one entry.
func NewSharded[K comparable, V any](capacity, shards int, hash func(K) uint64, opts ...Option[K, V]) (*Sharded[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if shards <= 0 || hash == nil {
		return nil, ErrInvalidShards
	}
	shards = min(shards, capacity)

	s := &Sharded[K, V]{
		shards:   make([]*Cache[K, V], shards),
		hash:     hash,
		capacity: capacity,
	}
	per, extra := capacity/shards, capacity%shards
	for i := range s.shards {
		n := per
		if i < extra {
			n++
		}
		c, err := New(n, opts...)
		if err != nil {
			return nil, err
		}
		s.shards[i] = c
	}
	return s, nil
}

func (s *Sharded[K, V]) shard(key K) *Cache[K, V] {
	return s.shards[s.hash(key)%uint64(len(s.shards))]
}

// Get returns the value for key and marks it visited.
func (s *Sharded[K, V]) Get(key K) (V, bool) {
	return s.shard(key).Get(key)
}

// Peek returns the value for key without marking it visited.
func (s *Sharded[K, V]) Peek(key K) (V, bool) {
	return s.shard(key).Peek(key)
}

// Insert stores value under key in the key's shard.
func (s *Sharded[K, V]) Insert(key K, value V) {
	s.shard(key).Insert(key, value)
}

// GetOrInsert is Cache.GetOrInsert on the key's shard.
func (s *Sharded[K, V]) GetOrInsert(key K, value V) (V, bool) {
	return s.shard(key).GetOrInsert(key, value)
}

// Remove deletes key and reports whether it was present.
func (s *Sharded[K, V]) Remove(key K) bool {
	return s.shard(key).Remove(key)
}

// Purge empties every shard.
func (s *Sharded[K, V]) Purge() {
	for _, c := range s.shards {
		c.Purge()
	}
}

// Len sums the shard lengths. Under concurrent writes it is approximate.
func (s *Sharded[K, V]) Len() int {
	n := 0
	for _, c := range s.shards {
		n += c.Len()
	}
	return n
}

// Cap returns the total capacity across shards.
func (s *Sharded[K, V]) Cap() int {
	return s.capacity
}

// Shards returns the number of shards.
func (s *Sharded[K, V]) Shards() int {
	return len(s.shards)
}

// Stats sums the shard counters. LastScan is the largest across shards.
func (s *Sharded[K, V]) Stats() Stats {
	var total Stats
	for _, c := range s.shards {
		total = total.add(c.Stats())
	}
	return total
}
