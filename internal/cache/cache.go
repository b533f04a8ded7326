// Package cache adapts cache implementations to one interface so the SIEVE
// cache in this module can be measured against the rest of the ecosystem.
package cache

// Key is the set of key types the registry builds caches for.
type Key interface {
	string | int
}

// Cache is the minimal surface every benchmarked cache exposes. Benchmarks
// store each key as its own value, so values share the key type.
type Cache[K Key] interface {
	Get(key K) (K, bool)
	Insert(key, value K)
	Name() string
	Close()
}

// GetOrInserter is implemented by caches that can look up and insert a key
// atomically.
type GetOrInserter[K Key] interface {
	GetOrInsert(key, value K) K
}

// Syncer is implemented by caches that apply writes asynchronously. Sync
// blocks until pending writes are visible to Get.
type Syncer interface {
	Sync()
}

// Factory creates a new cache instance with the given capacity.
type Factory[K Key] func(capacity int) Cache[K]

// SizedFactory creates a cache from capacity and expected entry size.
// Used for byte-budgeted caches like freecache that need to know entry sizes.
type SizedFactory func(capacity, entrySize int) Cache[string]
