package workload

import (
	"math/rand/v2"
	"strconv"
)

// Scan generates n keys cycling through [0, keySpace) in order. Once
// keySpace exceeds the cache size, FIFO-family caches miss on every access.
func Scan(n, keySpace int) []string {
	keys := make([]string, n)
	for i := range n {
		keys[i] = strconv.Itoa(i % keySpace)
	}
	return keys
}

// OneHitWonders mixes a Zipfian core with keys that are requested exactly
// once. ratio is the fraction of accesses that go to never-repeated keys.
func OneHitWonders(n int, z Zipf, ratio float64) []string {
	core := z.Ints(n)
	rng := rand.New(rand.NewPCG(z.Seed^0x9e3779b97f4a7c15, z.Seed))
	keys := make([]string, n)
	next := 0
	for i, k := range core {
		if rng.Float64() < ratio {
			keys[i] = "once-" + strconv.Itoa(next)
			next++
			continue
		}
		keys[i] = strconv.Itoa(k)
	}
	return keys
}
