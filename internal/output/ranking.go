package output

import (
	"math"
	"sort"

	"github.com/tstromberg/gosieve/internal/benchmark"
)

// Points awarded by placement: 1st=10, 2nd=7, 3rd=5, 4th=4, 5th=3, 6th=2, 7th=1.
var placementPoints = []float64{10, 7, 5, 4, 3, 2, 1}

var categoryOrder = []string{"Hit Rate", "Latency", "Throughput", "Memory"}

// rankedEntry holds a name and score for tie detection.
type rankedEntry struct {
	name  string
	score float64
}

// Round3 rounds to 3 decimal places for tie detection.
func Round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// WinnerEntry represents a ranked entry for winner display.
type WinnerEntry struct {
	Name  string
	Score float64
}

// FormatWinners returns winner names and the first runner-up for comparison.
// If multiple entries tie for first, all are returned as winners.
// Returns (winners, runnerUp) where runnerUp is nil if everyone ties or only one entry.
func FormatWinners(entries []WinnerEntry) (winners []string, runnerUp *WinnerEntry) {
	if len(entries) == 0 {
		return nil, nil
	}

	bestScore := Round3(entries[0].Score)
	for _, e := range entries {
		if Round3(e.Score) != bestScore {
			runnerUp = &WinnerEntry{Name: e.Name, Score: e.Score}
			break
		}
		winners = append(winners, e.Name)
	}
	return winners, runnerUp
}

// tally accumulates points and medals across benchmarks.
type tally struct {
	scores             map[string]float64
	medals             map[string][3]int // [gold, silver, bronze]
	categoryMedals     map[string]map[string][3]int
	categoryBenchmarks map[string][]BenchmarkMedal
}

func newTally() *tally {
	return &tally{
		scores:             make(map[string]float64),
		medals:             make(map[string][3]int),
		categoryMedals:     make(map[string]map[string][3]int),
		categoryBenchmarks: make(map[string][]BenchmarkMedal),
	}
}

// rank sorts entries (higher is better unless lowerBetter) and awards
// placements. Entries with scores equal to 3 decimal places share a
// placement, and the placements they occupy are skipped.
func (t *tally) rank(category, benchName string, entries []rankedEntry, lowerBetter bool) {
	if len(entries) == 0 {
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if lowerBetter {
			return entries[i].score < entries[j].score
		}
		return entries[i].score > entries[j].score
	})

	bm := BenchmarkMedal{Name: benchName}
	pos := 0
	for i := 0; i < len(entries); {
		var tied []string
		base := Round3(entries[i].score)
		for i < len(entries) && Round3(entries[i].score) == base {
			tied = append(tied, entries[i].name)
			i++
		}

		for _, n := range tied {
			if pos < len(placementPoints) {
				t.scores[n] += placementPoints[pos]
			} else if _, ok := t.scores[n]; !ok {
				t.scores[n] = 0
			}
			if pos < 3 {
				t.award(category, n, pos)
			}
		}

		switch pos {
		case 0:
			bm.Gold = tied
		case 1:
			bm.Silver = tied
		case 2:
			bm.Bronze = tied
		}
		pos += len(tied)
	}

	t.categoryBenchmarks[category] = append(t.categoryBenchmarks[category], bm)
}

func (t *tally) award(category, name string, pos int) {
	m := t.medals[name]
	m[pos]++
	t.medals[name] = m

	if t.categoryMedals[category] == nil {
		t.categoryMedals[category] = make(map[string][3]int)
	}
	cm := t.categoryMedals[category][name]
	cm[pos]++
	t.categoryMedals[category][name] = cm
}

// ComputeRankings calculates overall rankings from benchmark results.
func ComputeRankings(results Results) ([]Ranking, *MedalTable) {
	t := newTally()

	if results.HitRate != nil {
		for _, w := range results.HitRate.Workloads {
			entries := make([]rankedEntry, len(w.Results))
			for i, r := range w.Results {
				entries[i] = rankedEntry{r.Name, AvgHitRate(r, results.HitRate.Sizes)}
			}
			t.rank("Hit Rate", w.Name, entries, false)
		}
	}

	if results.Latency != nil {
		t.rank("Latency", "String Keys", latencyEntries(results.Latency.Results), true)
		t.rank("Latency", "Int Keys", latencyEntries(results.Latency.IntResults), true)

		entries := make([]rankedEntry, len(results.Latency.GetOrInsertResults))
		for i, r := range results.Latency.GetOrInsertResults {
			entries[i] = rankedEntry{r.Name, r.GetOrInsertNsOp}
		}
		t.rank("Latency", "GetOrInsert", entries, true)
	}

	if results.Throughput != nil {
		t.rank("Throughput", "String Keys", throughputEntries(results.Throughput.StringResults), false)
		t.rank("Throughput", "Int Keys", throughputEntries(results.Throughput.IntResults), false)
	}

	if results.Memory != nil {
		entries := make([]rankedEntry, len(results.Memory.Results))
		for i, r := range results.Memory.Results {
			entries[i] = rankedEntry{r.Name, float64(r.Bytes)}
		}
		t.rank("Memory", "Overhead", entries, true)
	}

	if len(t.scores) == 0 {
		return nil, nil
	}
	return t.overall(), t.medalTable()
}

func latencyEntries(results []benchmark.LatencyResult) []rankedEntry {
	entries := make([]rankedEntry, len(results))
	for i, r := range results {
		entries[i] = rankedEntry{r.Name, avgLatency(r)}
	}
	return entries
}

func throughputEntries(results []benchmark.ThroughputResult) []rankedEntry {
	entries := make([]rankedEntry, len(results))
	for i, r := range results {
		entries[i] = rankedEntry{r.Name, avgQPS(r)}
	}
	return entries
}

type cacheRank struct {
	name   string
	score  float64
	medals [3]int
}

// sortRanks orders by score, then gold, silver, bronze, then name.
func sortRanks(ranks []cacheRank) {
	sort.Slice(ranks, func(i, j int) bool {
		a, b := ranks[i], ranks[j]
		if a.score != b.score {
			return a.score > b.score
		}
		for k := range a.medals {
			if a.medals[k] != b.medals[k] {
				return a.medals[k] > b.medals[k]
			}
		}
		return a.name < b.name
	})
}

func toRankings(ranks []cacheRank, withScore bool) []Ranking {
	out := make([]Ranking, len(ranks))
	for i, r := range ranks {
		out[i] = Ranking{
			Rank:   i + 1,
			Name:   r.name,
			Gold:   r.medals[0],
			Silver: r.medals[1],
			Bronze: r.medals[2],
		}
		if withScore {
			out[i].Score = r.score
		}
	}
	return out
}

func (t *tally) overall() []Ranking {
	ranks := make([]cacheRank, 0, len(t.scores))
	for name, score := range t.scores {
		ranks = append(ranks, cacheRank{name, score, t.medals[name]})
	}
	sortRanks(ranks)
	return toRankings(ranks, true)
}

func (t *tally) medalTable() *MedalTable {
	var categories []CategoryMedals
	for _, cat := range categoryOrder {
		bm := t.categoryBenchmarks[cat]
		if len(bm) == 0 {
			continue
		}
		cm := t.categoryMedals[cat]
		ranks := make([]cacheRank, 0, len(cm))
		for name, m := range cm {
			ranks = append(ranks, cacheRank{name: name, medals: m})
		}
		sortRanks(ranks)
		categories = append(categories, CategoryMedals{
			Name:       cat,
			Benchmarks: bm,
			Rankings:   toRankings(ranks, false),
		})
	}
	return &MedalTable{Categories: categories}
}

// AvgHitRate computes the average hit rate across all cache sizes.
func AvgHitRate(r benchmark.HitRateResult, sizes []int) float64 {
	if len(sizes) == 0 {
		return 0
	}
	var sum float64
	for _, size := range sizes {
		sum += r.Rates[size]
	}
	return sum / float64(len(sizes))
}

func avgQPS(r benchmark.ThroughputResult) float64 {
	if len(r.QPS) == 0 {
		return 0
	}
	var sum float64
	for _, qps := range r.QPS {
		sum += qps
	}
	return sum / float64(len(r.QPS))
}

// avgLatency is the mean of Get and Insert latency.
func avgLatency(r benchmark.LatencyResult) float64 {
	return (r.GetNsOp + r.InsertNsOp) / 2
}
