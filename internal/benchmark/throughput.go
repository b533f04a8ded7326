package benchmark

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tstromberg/gosieve/internal/cache"
	"github.com/tstromberg/gosieve/internal/workload"
)

// ThroughputResult holds multi-threaded throughput results for a cache.
type ThroughputResult struct {
	Name string          `json:"name"`
	QPS  map[int]float64 `json:"qps"` // thread count -> QPS
}

// DefaultThreadCounts are the thread counts to benchmark.
var DefaultThreadCounts = []int{1, 8, 16, 32}

// Duration is how long each throughput measurement runs.
var Duration = 1 * time.Second

const (
	throughputCacheSize    = 10000
	throughputWorkloadSize = 1_000_000
	opsBatchSize           = 1000
)

// DefaultThroughputZipf is the key distribution for throughput runs.
var DefaultThroughputZipf = workload.Zipf{KeySpace: throughputCacheSize, Theta: 0.99, Seed: 42}

// RunThroughput benchmarks throughput at various thread counts using a Zipf
// workload with string keys. Uses 75% reads / 25% writes.
func RunThroughput(z workload.Zipf, threadCounts []int) []ThroughputResult {
	return runThroughput(cache.Strings(), z.Strings(throughputWorkloadSize), threadCounts)
}

// RunIntThroughput is RunThroughput with int keys.
func RunIntThroughput(z workload.Zipf, threadCounts []int) []ThroughputResult {
	return runThroughput(cache.Ints(), z.Ints(throughputWorkloadSize), threadCounts)
}

func runThroughput[K cache.Key](factories []cache.Factory[K], keys []K, threadCounts []int) []ThroughputResult {
	results := make([]ThroughputResult, 0, len(factories))
	for _, factory := range factories {
		qps := make(map[int]float64, len(threadCounts))
		var name string
		for _, threads := range threadCounts {
			c := factory(throughputCacheSize)
			name = c.Name()
			qps[threads] = measureQPS(c, keys, threads)
			c.Close()
		}
		results = append(results, ThroughputResult{Name: name, QPS: qps})
	}
	return results
}

func measureQPS[K cache.Key](c cache.Cache[K], keys []K, threads int) float64 {
	// Pre-populate cache
	for _, k := range keys[:min(throughputCacheSize, len(keys))] {
		c.Insert(k, k)
	}

	var ops atomic.Int64
	var stop atomic.Bool
	var wg sync.WaitGroup

	workloadLen := len(keys)
	start := time.Now()
	for t := range threads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Stagger start offsets so threads don't move in lockstep.
			for i := t * workloadLen / threads; ; {
				for range opsBatchSize {
					key := keys[i%workloadLen]
					if i%4 == 0 { // 25% writes
						c.Insert(key, key)
					} else { // 75% reads
						c.Get(key)
					}
					i++
				}
				ops.Add(opsBatchSize)
				if stop.Load() {
					return
				}
			}
		}()
	}

	time.Sleep(Duration)
	stop.Store(true)
	wg.Wait()

	return float64(ops.Load()) / time.Since(start).Seconds()
}
