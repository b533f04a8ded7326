package main

import (
	"slices"

	"github.com/jedisct1/dlog"

	"github.com/tstromberg/gosieve/internal/benchmark"
	"github.com/tstromberg/gosieve/internal/config"
	"github.com/tstromberg/gosieve/internal/output"
	"github.com/tstromberg/gosieve/internal/trace"
)

// runner executes the configured suites.
type runner struct {
	cfg   config.Config
	tests map[string]bool
}

func (r runner) shouldRun(test string) bool {
	return r.tests == nil || r.tests[test]
}

func (r runner) suite(name string) bool {
	return slices.Contains(r.cfg.Suites, name)
}

func (r runner) run() output.Results {
	var results output.Results
	if r.suite("hitrate") {
		results.HitRate = r.hitRate()
	}
	if r.suite("latency") {
		results.Latency = r.latency()
	}
	if r.suite("throughput") {
		results.Throughput = r.throughput()
	}
	if r.suite("memory") {
		results.Memory = r.memory()
	}
	return results
}

// workloads builds the synthetic workloads and loads the configured traces.
// Traces that fail to load are skipped.
func (r runner) workloads() []benchmark.Workload {
	z := r.cfg.Zipf
	var ws []benchmark.Workload
	if r.shouldRun("zipf") {
		ws = append(ws, benchmark.ZipfWorkload(z.Zipf(), z.Ops))
	}
	if r.shouldRun("scan") {
		ws = append(ws, benchmark.ScanWorkload(z.Ops, z.KeySpace))
	}
	if r.shouldRun("one-hit") {
		ws = append(ws, benchmark.OneHitWorkload(z.Zipf(), z.Ops, z.OneHitRatio))
	}
	for _, spec := range r.cfg.Traces {
		if !r.shouldRun(spec.Name) {
			continue
		}
		ops, err := spec.Load()
		if err != nil {
			dlog.Warnf("skipping trace %s: %v", spec.Name, err)
			continue
		}
		ws = append(ws, benchmark.Workload{
			Name:        spec.Name,
			Description: string(spec.Format) + " trace " + spec.Path,
			Ops:         ops,
		})
	}
	return ws
}

func (r runner) hitRate() *output.HitRateData {
	data := &output.HitRateData{Sizes: r.cfg.Sizes}
	for _, w := range r.workloads() {
		dlog.Noticef("hitrate: %s (%d ops)", w.Name, len(w.Ops))
		data.Workloads = append(data.Workloads, output.HitRateWorkload{
			Name:        w.Name,
			Description: w.Description,
			Ops:         len(w.Ops),
			Unique:      trace.Unique(w.Ops),
			Results:     benchmark.RunHitRate(w, r.cfg.Sizes),
		})
	}
	return data
}

func (r runner) latency() *output.LatencyData {
	data := &output.LatencyData{}
	if r.shouldRun("string") {
		dlog.Noticef("latency: string keys")
		data.Results = benchmark.RunLatency()
	}
	if r.shouldRun("int") {
		dlog.Noticef("latency: int keys")
		data.IntResults = benchmark.RunIntLatency()
	}
	if r.shouldRun("getorinsert") {
		dlog.Noticef("latency: GetOrInsert")
		data.GetOrInsertResults = benchmark.RunGetOrInsertLatency()
	}
	return data
}

func (r runner) throughput() *output.ThroughputData {
	data := &output.ThroughputData{Threads: r.cfg.Threads}
	z := benchmark.DefaultThroughputZipf
	if r.shouldRun("string-throughput") {
		dlog.Noticef("throughput: string keys, threads %v", r.cfg.Threads)
		data.StringResults = benchmark.RunThroughput(z, r.cfg.Threads)
	}
	if r.shouldRun("int-throughput") {
		dlog.Noticef("throughput: int keys, threads %v", r.cfg.Threads)
		data.IntResults = benchmark.RunIntThroughput(z, r.cfg.Threads)
	}
	return data
}

func (r runner) memory() *output.MemoryData {
	if !r.shouldRun("memory") {
		return nil
	}
	m := r.cfg.Memory
	dlog.Noticef("memory: %d entries of %d bytes", m.Capacity, m.ValueSize)
	results, failures, err := benchmark.RunMemory(m.Capacity, m.ValueSize)
	if err != nil {
		dlog.Errorf("memory suite: %v", err)
		return nil
	}
	for _, f := range failures {
		dlog.Warnf("memory: %s: %v", f.Name, f.Err)
	}
	return &output.MemoryData{Results: results, Capacity: m.Capacity, ValSize: m.ValueSize}
}
