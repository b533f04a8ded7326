package output

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"

	"github.com/tstromberg/gosieve/internal/benchmark"
)

// mdWriter remembers the first write error so rendering code can stay linear.
type mdWriter struct {
	w   io.Writer
	err error
}

func (m *mdWriter) printf(format string, args ...any) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.w, format, args...)
}

// WriteMarkdown writes benchmark results to a Markdown file, replacing it
// atomically.
func WriteMarkdown(filename string, results Results, commandLine string) error {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, results, commandLine); err != nil {
		return err
	}
	if err := atomic.WriteFile(filename, &buf); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

// RenderMarkdown renders benchmark results as Markdown tables.
func RenderMarkdown(out io.Writer, results Results, commandLine string) error {
	w := &mdWriter{w: out}

	w.printf("# gosieve Results\n\n")
	w.printf("```\n")
	w.printf("Command: %s\n", commandLine)
	w.printf("Environment: %s/%s, %d CPUs, %s\n", results.MachineInfo.OS, results.MachineInfo.Arch, results.MachineInfo.NumCPU, results.MachineInfo.GoVersion)
	w.printf("```\n\n")

	if results.HitRate != nil {
		w.printf("## Hit Rate Benchmarks\n\n")
		for _, wl := range results.HitRate.Workloads {
			writeHitRate(w, wl, results.HitRate.Sizes)
		}
	}

	if results.Latency != nil {
		w.printf("## Latency Benchmarks\n\n")
		writeLatency(w, "String Keys", results.Latency.Results)
		writeLatency(w, "Int Keys", results.Latency.IntResults)
		writeGetOrInsertLatency(w, results.Latency.GetOrInsertResults)
	}

	if results.Throughput != nil {
		w.printf("## Throughput Benchmarks\n\n")
		writeThroughput(w, "String Keys", results.Throughput.StringResults, results.Throughput.Threads)
		writeThroughput(w, "Int Keys", results.Throughput.IntResults, results.Throughput.Threads)
	}

	if results.Memory != nil && len(results.Memory.Results) > 0 {
		w.printf("## Memory Benchmarks\n\n")
		w.printf("%s entries of %s each.\n\n", humanize.Comma(int64(results.Memory.Capacity)), humanize.IBytes(uint64(results.Memory.ValSize))) //nolint:gosec // sizes are positive
		writeMemory(w, results.Memory.Results)
	}

	if len(results.Rankings) > 0 {
		w.printf("## Overall Rankings\n\n")
		w.printf("| Rank | Cache             | Score | Gold | Silver | Bronze |\n")
		w.printf("|------|-------------------|-------|------|--------|--------|\n")
		for _, r := range results.Rankings {
			w.printf("| %4d | %-17s | %5.0f | %4d | %6d | %6d |\n", r.Rank, r.Name, r.Score, r.Gold, r.Silver, r.Bronze)
		}
		w.printf("\n")
	}

	return w.err
}

// writeWinner prints the winner line. Entries must be sorted best first;
// for lower-is-better metrics the margin is measured from the winner.
func writeWinner(w *mdWriter, entries []WinnerEntry, lowerBetter bool) {
	winners, runnerUp := FormatWinners(entries)
	if len(winners) == 0 {
		return
	}
	if runnerUp == nil {
		if len(winners) > 1 {
			w.printf("\n  tie: %s\n", strings.Join(winners, ", "))
		}
		w.printf("\n")
		return
	}
	best := entries[0].Score
	var pct float64
	if lowerBetter {
		pct = (runnerUp.Score - best) / best * 100
	} else {
		pct = (best - runnerUp.Score) / runnerUp.Score * 100
	}
	w.printf("\n  winner: %s (+%.1f%% vs %s)\n\n", strings.Join(winners, ", "), pct, runnerUp.Name)
}

func writeHitRate(w *mdWriter, wl HitRateWorkload, sizes []int) {
	if len(wl.Results) == 0 {
		return
	}

	w.printf("### %s\n\n", wl.Name)
	if wl.Description != "" || wl.Ops > 0 {
		w.printf("%s: %s ops, %s unique keys\n\n", wl.Description, humanize.Comma(int64(wl.Ops)), humanize.Comma(int64(wl.Unique)))
	}

	w.printf("| Cache             |")
	for _, size := range sizes {
		w.printf(" %8s |", humanize.Comma(int64(size)))
	}
	w.printf("    Avg |\n")

	w.printf("|-------------------|")
	for range sizes {
		w.printf("----------|")
	}
	w.printf("--------|\n")

	sorted := make([]benchmark.HitRateResult, len(wl.Results))
	copy(sorted, wl.Results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return AvgHitRate(sorted[i], sizes) > AvgHitRate(sorted[j], sizes)
	})

	entries := make([]WinnerEntry, len(sorted))
	for i, r := range sorted {
		w.printf("| %-17s |", r.Name)
		for _, size := range sizes {
			w.printf("   %5.2f%% |", r.Rates[size])
		}
		avg := AvgHitRate(r, sizes)
		w.printf(" %5.2f%% |\n", avg)
		entries[i] = WinnerEntry{Name: r.Name, Score: avg}
	}
	writeWinner(w, entries, false)
}

func writeLatency(w *mdWriter, title string, data []benchmark.LatencyResult) {
	if len(data) == 0 {
		return
	}

	w.printf("### %s\n\n", title)
	w.printf("| Cache             | Get ns | Get alloc | Insert ns | Insert alloc | Evict ns | Evict alloc | Avg ns |\n")
	w.printf("|-------------------|--------|-----------|-----------|--------------|----------|-------------|--------|\n")

	sorted := make([]benchmark.LatencyResult, len(data))
	copy(sorted, data)
	sort.SliceStable(sorted, func(i, j int) bool {
		return avgLatency(sorted[i]) < avgLatency(sorted[j])
	})

	entries := make([]WinnerEntry, len(sorted))
	for i, r := range sorted {
		w.printf("| %-17s | %6.0f | %9d | %9.0f | %12d | %8.0f | %11d | %6.0f |\n",
			r.Name, r.GetNsOp, r.GetAllocs, r.InsertNsOp, r.InsertAllocs, r.InsertEvictNsOp, r.InsertEvictAllocs, avgLatency(r))
		entries[i] = WinnerEntry{Name: r.Name, Score: avgLatency(r)}
	}
	writeWinner(w, entries, true)
}

func writeGetOrInsertLatency(w *mdWriter, data []benchmark.LatencyResult) {
	if len(data) == 0 {
		return
	}

	w.printf("### GetOrInsert\n\n")
	w.printf("| Cache             | GetOrInsert ns | GetOrInsert alloc |\n")
	w.printf("|-------------------|----------------|-------------------|\n")

	sorted := make([]benchmark.LatencyResult, len(data))
	copy(sorted, data)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GetOrInsertNsOp < sorted[j].GetOrInsertNsOp
	})

	entries := make([]WinnerEntry, len(sorted))
	for i, r := range sorted {
		w.printf("| %-17s | %14.0f | %17d |\n", r.Name, r.GetOrInsertNsOp, r.GetOrInsertAllocs)
		entries[i] = WinnerEntry{Name: r.Name, Score: r.GetOrInsertNsOp}
	}
	writeWinner(w, entries, true)
}

func formatQPS(qps float64) string {
	if qps >= 1_000_000 {
		return fmt.Sprintf("%6.2fM", qps/1_000_000)
	}
	return fmt.Sprintf("%6.0fK", qps/1_000)
}

func writeThroughput(w *mdWriter, title string, data []benchmark.ThroughputResult, threads []int) {
	if len(data) == 0 {
		return
	}

	w.printf("### %s\n\n", title)

	w.printf("| Cache             |")
	for _, t := range threads {
		w.printf(" %2dT       |", t)
	}
	w.printf("       Avg |\n")

	w.printf("|-------------------|")
	for range threads {
		w.printf("-----------|")
	}
	w.printf("-----------|\n")

	sorted := make([]benchmark.ThroughputResult, len(data))
	copy(sorted, data)
	sort.SliceStable(sorted, func(i, j int) bool {
		return avgQPS(sorted[i]) > avgQPS(sorted[j])
	})

	entries := make([]WinnerEntry, len(sorted))
	for i, r := range sorted {
		w.printf("| %-17s |", r.Name)
		for _, t := range threads {
			w.printf(" %s   |", formatQPS(r.QPS[t]))
		}
		w.printf(" %s   |\n", formatQPS(avgQPS(r)))
		entries[i] = WinnerEntry{Name: r.Name, Score: avgQPS(r)}
	}
	writeWinner(w, entries, false)
}

func writeMemory(w *mdWriter, data []benchmark.MemoryResult) {
	w.printf("| Cache             | Items Stored |     Memory | Overhead (bytes/item) |\n")
	w.printf("|-------------------|--------------|------------|-----------------------|\n")

	entries := make([]WinnerEntry, len(data))
	for i, r := range data {
		w.printf("| %-17s | %12s | %10s | %21d |\n", r.Name, humanize.Comma(int64(r.Items)), humanize.IBytes(r.Bytes), r.BytesPerItem)
		entries[i] = WinnerEntry{Name: r.Name, Score: float64(r.Bytes)}
	}
	writeWinner(w, entries, true)
}
