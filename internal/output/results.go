// Package output provides result formatting and export.
package output

import (
	"runtime"

	"github.com/tstromberg/gosieve/internal/benchmark"
)

// Results holds all benchmark results of one run.
type Results struct {
	Timestamp   string
	HitRate     *HitRateData
	Latency     *LatencyData
	Throughput  *ThroughputData
	Memory      *MemoryData
	Rankings    []Ranking
	MedalTable  *MedalTable
	MachineInfo MachineInfo
}

// MachineInfo holds information about the benchmark environment.
type MachineInfo struct {
	OS          string
	Arch        string
	NumCPU      int
	GoVersion   string
	CommandLine string
}

// CurrentMachine describes the running process.
func CurrentMachine() MachineInfo {
	return MachineInfo{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}
}

// Ranking represents an overall ranking entry.
type Ranking struct {
	Rank   int
	Name   string
	Score  float64
	Gold   int
	Silver int
	Bronze int
}

// BenchmarkMedal represents a single benchmark's top 3 placements. Tied
// entries share a placement.
type BenchmarkMedal struct {
	Name   string
	Gold   []string
	Silver []string
	Bronze []string
}

// CategoryMedals holds medals for a benchmark category with its winner.
type CategoryMedals struct {
	Name       string
	Benchmarks []BenchmarkMedal
	Rankings   []Ranking
}

// MedalTable holds all benchmark medals organized by category.
type MedalTable struct {
	Categories []CategoryMedals
}

// HitRateData holds hit rate results for every replayed workload.
type HitRateData struct {
	Workloads []HitRateWorkload
	Sizes     []int
}

// HitRateWorkload is the hit rate table for one workload.
type HitRateWorkload struct {
	Name        string
	Description string
	Ops         int
	Unique      int
	Results     []benchmark.HitRateResult
}

// LatencyData holds latency benchmark data.
type LatencyData struct {
	Results            []benchmark.LatencyResult
	IntResults         []benchmark.LatencyResult
	GetOrInsertResults []benchmark.LatencyResult
}

// ThroughputData holds throughput benchmark data.
type ThroughputData struct {
	StringResults []benchmark.ThroughputResult
	IntResults    []benchmark.ThroughputResult
	Threads       []int
}

// MemoryData holds memory benchmark data.
type MemoryData struct {
	Results  []benchmark.MemoryResult
	Capacity int
	ValSize  int
}
