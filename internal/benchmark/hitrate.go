// Package benchmark implements cache benchmark runners.
package benchmark

import (
	"github.com/tstromberg/gosieve/internal/cache"
	"github.com/tstromberg/gosieve/internal/trace"
	"github.com/tstromberg/gosieve/internal/workload"
)

// HitRateResult holds hit rate results for a single cache.
type HitRateResult struct {
	Name  string          `json:"name"`
	Rates map[int]float64 `json:"rates"` // cache size -> hit rate percentage
}

// Workload is a named stream of operations replayed against every cache.
type Workload struct {
	Name        string
	Description string
	Ops         []trace.Op
	// EntrySize sizes byte-budgeted caches. Zero derives it from Ops.
	EntrySize int
}

// DefaultCacheSizes are the cache sizes to benchmark.
var DefaultCacheSizes = []int{16_384, 32_768, 65_536, 131_072, 262_144}

// ZipfEntrySize: key ~6 bytes (int as string), value=key, ~32 bytes overhead.
const ZipfEntrySize = 45

// ZipfWorkload builds a GET-only workload from a Zipf distribution.
func ZipfWorkload(z workload.Zipf, n int) Workload {
	return Workload{
		Name:        "zipf",
		Description: "synthetic Zipf distribution",
		Ops:         getOps(z.Keys(n)),
		EntrySize:   ZipfEntrySize,
	}
}

// ScanWorkload builds a cyclic sequential workload over keySpace keys.
func ScanWorkload(n, keySpace int) Workload {
	return Workload{
		Name:        "scan",
		Description: "cyclic sequential scan",
		Ops:         getOps(workload.Scan(n, keySpace)),
		EntrySize:   ZipfEntrySize,
	}
}

// OneHitWorkload builds a Zipf workload diluted with one-hit wonders.
func OneHitWorkload(z workload.Zipf, n int, ratio float64) Workload {
	return Workload{
		Name:        "one-hit",
		Description: "Zipf with one-hit wonders",
		Ops:         getOps(workload.OneHitWonders(n, z, ratio)),
	}
}

func getOps(keys []string) []trace.Op {
	ops := make([]trace.Op, len(keys))
	for i, k := range keys {
		ops[i] = trace.Op{Key: k}
	}
	return ops
}

// RunHitRate replays w against every registered cache at each size.
func RunHitRate(w Workload, sizes []int) []HitRateResult {
	entrySize := w.EntrySize
	if entrySize == 0 {
		entrySize = trace.EntrySize(w.Ops)
	}

	factories := cache.StringsWithEntrySize(entrySize)
	results := make([]HitRateResult, 0, len(factories))
	for _, factory := range factories {
		rates := make(map[int]float64, len(sizes))
		var name string
		for _, size := range sizes {
			c := factory(size)
			name = c.Name()
			rates[size] = replay(c, w.Ops)
			c.Close()
		}
		results = append(results, HitRateResult{Name: name, Rates: rates})
	}
	return results
}

// replay runs ops against c and returns the GET hit rate as a percentage.
// A GET miss inserts the key, as a read-through cache would.
func replay(c cache.Cache[string], ops []trace.Op) float64 {
	var hits, misses int64
	for _, op := range ops {
		if op.Set {
			c.Insert(op.Key, op.Key)
			continue
		}
		if _, ok := c.Get(op.Key); ok {
			hits++
		} else {
			misses++
			c.Insert(op.Key, op.Key)
		}
	}
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses) * 100
}
