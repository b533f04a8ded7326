package benchmark

import (
	"strconv"
	"testing"

	"github.com/tstromberg/gosieve/internal/cache"
)

// LatencyResult holds single-threaded latency results for a cache.
type LatencyResult struct {
	Name              string  `json:"name"`
	GetNsOp           float64 `json:"getNsOp"`           // nanoseconds per Get
	InsertNsOp        float64 `json:"insertNsOp"`        // nanoseconds per Insert (no eviction)
	InsertEvictNsOp   float64 `json:"insertEvictNsOp"`   // nanoseconds per Insert with eviction (20x keyspace)
	GetOrInsertNsOp   float64 `json:"getOrInsertNsOp"`   // nanoseconds per GetOrInsert
	GetAllocs         int64   `json:"getAllocs"`         // allocations per Get
	InsertAllocs      int64   `json:"insertAllocs"`      // allocations per Insert
	InsertEvictAllocs int64   `json:"insertEvictAllocs"` // allocations per Insert with eviction
	GetOrInsertAllocs int64   `json:"getOrInsertAllocs"` // allocations per GetOrInsert
	HasGetOrInsert    bool    `json:"hasGetOrInsert"`
}

const latencyCacheSize = 10000

// RunLatency benchmarks single-threaded latency for all caches (string keys).
func RunLatency() []LatencyResult {
	return runLatency(cache.Strings(), stringKeys(latencyCacheSize*20))
}

// RunIntLatency benchmarks single-threaded latency for int-keyed caches.
func RunIntLatency() []LatencyResult {
	return runLatency(cache.Ints(), intKeys(latencyCacheSize*20))
}

// RunGetOrInsertLatency benchmarks GetOrInsert alone, for the caches that
// support it, on a half-populated cache.
func RunGetOrInsertLatency() []LatencyResult {
	keys := stringKeys(latencyCacheSize)
	var results []LatencyResult
	for _, factory := range cache.Strings() {
		c := factory(latencyCacheSize)
		name := c.Name()
		_, ok := c.(cache.GetOrInserter[string])
		c.Close()
		if !ok {
			continue
		}
		r := testing.Benchmark(func(b *testing.B) {
			benchGetOrInsert(b, factory, keys)
		})
		results = append(results, LatencyResult{
			Name:              name,
			GetOrInsertNsOp:   float64(r.NsPerOp()),
			GetOrInsertAllocs: r.AllocsPerOp(),
			HasGetOrInsert:    true,
		})
	}
	return results
}

func stringKeys(n int) []string {
	keys := make([]string, n)
	for i := range n {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

func intKeys(n int) []int {
	keys := make([]int, n)
	for i := range n {
		keys[i] = i
	}
	return keys
}

// runLatency measures every factory. The first latencyCacheSize keys fit
// without eviction; the full slice is the eviction keyspace.
func runLatency[K cache.Key](factories []cache.Factory[K], evictKeys []K) []LatencyResult {
	keys := evictKeys[:latencyCacheSize]
	results := make([]LatencyResult, 0, len(factories))

	for _, factory := range factories {
		c := factory(latencyCacheSize)
		name := c.Name()
		_, hasGetOrInsert := c.(cache.GetOrInserter[K])
		c.Close()

		getResult := testing.Benchmark(func(b *testing.B) {
			benchGet(b, factory, keys)
		})
		insertResult := testing.Benchmark(func(b *testing.B) {
			benchInsert(b, factory, keys)
		})
		evictResult := testing.Benchmark(func(b *testing.B) {
			benchInsert(b, factory, evictKeys)
		})

		result := LatencyResult{
			Name:              name,
			GetNsOp:           float64(getResult.NsPerOp()),
			InsertNsOp:        float64(insertResult.NsPerOp()),
			InsertEvictNsOp:   float64(evictResult.NsPerOp()),
			GetAllocs:         getResult.AllocsPerOp(),
			InsertAllocs:      insertResult.AllocsPerOp(),
			InsertEvictAllocs: evictResult.AllocsPerOp(),
			HasGetOrInsert:    hasGetOrInsert,
		}

		if hasGetOrInsert {
			r := testing.Benchmark(func(b *testing.B) {
				benchGetOrInsert(b, factory, keys)
			})
			result.GetOrInsertNsOp = float64(r.NsPerOp())
			result.GetOrInsertAllocs = r.AllocsPerOp()
		}

		results = append(results, result)
	}
	return results
}

func benchGet[K cache.Key](b *testing.B, factory cache.Factory[K], keys []K) {
	c := factory(latencyCacheSize)
	defer c.Close()

	for _, k := range keys {
		c.Insert(k, k)
	}
	if s, ok := c.(cache.Syncer); ok {
		s.Sync()
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		c.Get(keys[i%len(keys)])
	}
}

func benchInsert[K cache.Key](b *testing.B, factory cache.Factory[K], keys []K) {
	c := factory(latencyCacheSize)
	defer c.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		k := keys[i%len(keys)]
		c.Insert(k, k)
	}
}

func benchGetOrInsert[K cache.Key](b *testing.B, factory cache.Factory[K], keys []K) {
	c := factory(latencyCacheSize)
	defer c.Close()

	g, ok := c.(cache.GetOrInserter[K])
	if !ok {
		b.Skip("cache does not implement GetOrInsert")
	}

	// Pre-populate half the keys to test both hit and miss cases
	for _, k := range keys[:len(keys)/2] {
		c.Insert(k, k)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		k := keys[i%len(keys)]
		g.GetOrInsert(k, k)
	}
}
