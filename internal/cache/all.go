package cache

// stringRegistry maps cache names to their string-keyed factories.
var stringRegistry = map[string]Factory[string]{
	"gosieve":           NewGosieve[string],
	"gosieve-sharded":   NewGosieveSharded[string],
	"golang-fifo-sieve": NewFIFOSieve[string],
	"s3-fifo":           NewS3FIFO[string],
	"otter":             NewOtter[string],
	"theine":            NewTheine[string],
	"ttlcache":          NewTTLCache[string],
	"ristretto":         NewRistretto[string],
	"tinylfu":           NewTinyLFU,
	"freelru-shard":     NewFreeLRUSharded[string],
	"freelru-sync":      NewFreeLRUSynced[string],
	"freecache":         NewFreecache,
	"2q":                NewTwoQueue[string],
	"s4lru":             NewS4LRU,
	"clock":             NewClock[string],
	"lru":               NewLRU[string],
}

// sizedRegistry holds caches that need the workload's entry size.
var sizedRegistry = map[string]SizedFactory{
	"freecache": NewFreecacheSized,
}

// intRegistry maps cache names to their int-keyed factories. Caches that
// only accept string keys are absent.
var intRegistry = map[string]Factory[int]{
	"gosieve":           NewGosieve[int],
	"gosieve-sharded":   NewGosieveSharded[int],
	"golang-fifo-sieve": NewFIFOSieve[int],
	"s3-fifo":           NewS3FIFO[int],
	"otter":             NewOtter[int],
	"theine":            NewTheine[int],
	"ttlcache":          NewTTLCache[int],
	"ristretto":         NewRistretto[int],
	"freelru-shard":     NewFreeLRUSharded[int],
	"freelru-sync":      NewFreeLRUSynced[int],
	"2q":                NewTwoQueue[int],
	"clock":             NewClock[int],
	"lru":               NewLRU[int],
}

// defaultOrder defines the display order for caches.
var defaultOrder = []string{
	"gosieve", "gosieve-sharded", "golang-fifo-sieve", "s3-fifo",
	"otter", "theine", "ttlcache", "ristretto", "tinylfu",
	"freelru-shard", "freelru-sync", "freecache", "2q", "s4lru", "clock", "lru",
}

// filter holds the current cache filter (nil = all caches).
var filter map[string]bool

// SetFilter restricts the registry to the named caches. An empty list
// clears the filter. Unknown names are returned so callers can report them.
func SetFilter(names []string) (unknown []string) {
	if len(names) == 0 {
		filter = nil
		return nil
	}
	filter = make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := stringRegistry[name]; !ok {
			unknown = append(unknown, name)
			continue
		}
		filter[name] = true
	}
	return unknown
}

func included(name string) bool {
	return filter == nil || filter[name]
}

// Strings returns string-keyed factories for all (or filtered) caches.
func Strings() []Factory[string] {
	return StringsWithEntrySize(0)
}

// StringsWithEntrySize is like Strings, but byte-budgeted caches are sized
// for entries of entrySize bytes. A zero entrySize uses their defaults.
func StringsWithEntrySize(entrySize int) []Factory[string] {
	var factories []Factory[string]
	for _, name := range defaultOrder {
		if !included(name) {
			continue
		}
		if sf, ok := sizedRegistry[name]; ok && entrySize > 0 {
			factories = append(factories, func(capacity int) Cache[string] {
				return sf(capacity, entrySize)
			})
			continue
		}
		if f, ok := stringRegistry[name]; ok {
			factories = append(factories, f)
		}
	}
	return factories
}

// Ints returns int-keyed factories for all (or filtered) caches that
// support int keys.
func Ints() []Factory[int] {
	var factories []Factory[int]
	for _, name := range defaultOrder {
		if !included(name) {
			continue
		}
		if f, ok := intRegistry[name]; ok {
			factories = append(factories, f)
		}
	}
	return factories
}

// Lookup returns the string-keyed factory registered under name.
func Lookup(name string) (Factory[string], bool) {
	f, ok := stringRegistry[name]
	return f, ok
}

// Names returns the names of all (or filtered) caches in display order.
func Names() []string {
	var names []string
	for _, name := range defaultOrder {
		if included(name) {
			names = append(names, name)
		}
	}
	return names
}

// AvailableNames returns all cache names, ignoring the filter.
func AvailableNames() []string {
	return defaultOrder
}
