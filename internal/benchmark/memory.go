package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/tstromberg/gosieve/internal/cache"
)

// MemoryResult holds memory usage results for a cache.
type MemoryResult struct {
	Name          string `json:"name"`
	Items         int    `json:"items"`
	Bytes         uint64 `json:"bytes"`
	BytesPerItem  int64  `json:"bytesPerItem"`
	BaselineBytes uint64 `json:"baselineBytes"`
}

// ProbeOutput is the JSON line printed by the cmd/mem probe.
type ProbeOutput struct {
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
	Items int    `json:"items"`
	Bytes uint64 `json:"bytes"`
}

// DefaultMemoryCapacity is the cache size for memory benchmarks.
const DefaultMemoryCapacity = 32768

// DefaultValueSize is the value size in bytes.
const DefaultValueSize = 1024

// MemoryError reports one cache whose probe failed. The run continues.
type MemoryError struct {
	Name string
	Err  error
}

// RunMemory builds the memory probe and runs it once per cache in a fresh
// process, so one cache's garbage never counts against another.
func RunMemory(capacity, valSize int) ([]MemoryResult, []MemoryError, error) {
	dir, err := os.MkdirTemp("", "gosieve-mem")
	if err != nil {
		return nil, nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(dir) //nolint:errcheck // best-effort cleanup

	binPath := filepath.Join(dir, "mem-probe")
	buildCmd := exec.Command("go", "build", "-o", binPath, "./cmd/mem") //nolint:noctx // trusted command
	if out, err := buildCmd.CombinedOutput(); err != nil {
		return nil, nil, fmt.Errorf("build mem probe: %w\n%s", err, out)
	}

	baseline, err := runProbe(binPath, "baseline", capacity, valSize)
	if err != nil {
		return nil, nil, fmt.Errorf("baseline probe: %w", err)
	}

	var results []MemoryResult
	var failures []MemoryError
	for _, name := range cache.Names() {
		res, err := runProbe(binPath, name, capacity, valSize)
		if err != nil {
			failures = append(failures, MemoryError{Name: name, Err: err})
			continue
		}
		results = append(results, withBaseline(res, baseline.Bytes))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Bytes < results[j].Bytes
	})
	return results, failures, nil
}

// withBaseline fills in the per-item overhead relative to a plain map.
func withBaseline(r MemoryResult, baseline uint64) MemoryResult {
	r.BaselineBytes = baseline
	if r.Items > 0 {
		diff := int64(r.Bytes) - int64(baseline) //nolint:gosec // heap sizes fit in int64
		r.BytesPerItem = diff / int64(r.Items)
	}
	return r
}

func runProbe(binPath, cacheName string, capacity, valSize int) (MemoryResult, error) {
	cmd := exec.Command(binPath, //nolint:gosec,noctx // trusted binary path
		"--cache", cacheName,
		"--cap", strconv.Itoa(capacity),
		"--val-size", strconv.Itoa(valSize),
	)

	out, err := cmd.Output()
	if err != nil {
		return MemoryResult{}, fmt.Errorf("run %s: %w", cacheName, err)
	}
	return parseProbe(out)
}

func parseProbe(out []byte) (MemoryResult, error) {
	var res ProbeOutput
	if err := json.Unmarshal(out, &res); err != nil {
		return MemoryResult{}, fmt.Errorf("parse probe output: %w\n%s", err, out)
	}
	if res.Error != "" {
		return MemoryResult{}, fmt.Errorf("%s: %s", res.Name, res.Error)
	}
	return MemoryResult{Name: res.Name, Items: res.Items, Bytes: res.Bytes}, nil
}
