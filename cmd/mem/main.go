// Package main measures memory usage for a single cache implementation.
// Run in isolated process for accurate measurements.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/tstromberg/gosieve/internal/benchmark"
	"github.com/tstromberg/gosieve/internal/cache"
)

var keepAlive any

func main() {
	cacheName := pflag.String("cache", "", "cache implementation to measure, or \"baseline\"")
	capacity := pflag.Int("cap", benchmark.DefaultMemoryCapacity, "capacity")
	valSize := pflag.Int("val-size", benchmark.DefaultValueSize, "value size in bytes")
	pflag.Parse()

	out := benchmark.ProbeOutput{Name: *cacheName}
	enc := json.NewEncoder(os.Stdout)

	items, err := measure(*cacheName, *capacity, *valSize)
	if err != nil {
		out.Error = err.Error()
		enc.Encode(out) //nolint:errcheck,gosec // stdout
		return
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)
	runtime.GC()
	debug.FreeOSMemory()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	out.Items = items
	out.Bytes = mem.Alloc
	enc.Encode(out) //nolint:errcheck,gosec // stdout
}

func measure(name string, capacity, valSize int) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("cache name required")
	}

	runtime.GC()
	debug.FreeOSMemory()

	if name == "baseline" {
		return runBaseline(capacity, valSize), nil
	}
	factory, ok := cache.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("unknown cache %q", name)
	}
	return runCache(factory, capacity, valSize), nil
}

// runBaseline stores the same data in a plain map.
func runBaseline(capacity, valSize int) int {
	m := make(map[string]string, capacity)
	for i := range capacity {
		key := "key-" + strconv.Itoa(i)
		m[key] = string(make([]byte, valSize))
	}
	keepAlive = m
	return len(m)
}

// runCache fills the cache twice over so eviction bookkeeping is exercised,
// then counts how many of the most recent capacity keys survived.
func runCache(factory cache.Factory[string], capacity, valSize int) int {
	c := factory(capacity)
	for pass := range 2 {
		for i := range capacity {
			key := "key-" + strconv.Itoa(pass*capacity+i)
			c.Insert(key, string(make([]byte, valSize)))
		}
	}
	if s, ok := c.(cache.Syncer); ok {
		s.Sync()
	}

	items := 0
	for i := range capacity {
		if _, ok := c.Get("key-" + strconv.Itoa(capacity+i)); ok {
			items++
		}
	}
	keepAlive = c
	return items
}
