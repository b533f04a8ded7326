// Package workload generates cache workload patterns.
package workload

import (
	"math"
	"math/rand/v2"
	"strconv"
)

// Zipf describes a Zipfian key stream. Theta controls the skew: higher
// values concentrate accesses on fewer keys.
type Zipf struct {
	KeySpace int
	Theta    float64
	Seed     uint64
}

// Ints generates n keys in [0, KeySpace).
func (z Zipf) Ints(n int) []int {
	rng := rand.New(rand.NewPCG(z.Seed, z.Seed+1))
	keys := make([]int, n)

	spread := z.KeySpace + 1
	zeta2 := computeZeta(2, z.Theta)
	zetaN := computeZeta(uint64(spread), z.Theta) //nolint:gosec // spread is positive
	alpha := 1.0 / (1.0 - z.Theta)
	eta := (1 - math.Pow(2.0/float64(spread), 1.0-z.Theta)) / (1.0 - zeta2/zetaN)
	halfPowTheta := 1.0 + math.Pow(0.5, z.Theta)

	for i := range n {
		u := rng.Float64()
		uz := u * zetaN
		var result int
		switch {
		case uz < 1.0:
			result = 0
		case uz < halfPowTheta:
			result = 1
		default:
			result = int(float64(spread) * math.Pow(eta*u-eta+1.0, alpha))
		}
		if result >= z.KeySpace {
			result = z.KeySpace - 1
		}
		keys[i] = result
	}
	return keys
}

// Strings generates n keys formatted as decimal strings.
func (z Zipf) Strings(n int) []string {
	return toStrings(z.Ints(n))
}

// Keys is an alias for Strings, the form most benchmarks consume.
func (z Zipf) Keys(n int) []string {
	return z.Strings(n)
}

func computeZeta(n uint64, theta float64) float64 {
	sum := 0.0
	for i := uint64(1); i <= n; i++ {
		sum += 1.0 / math.Pow(float64(i), theta)
	}
	return sum
}

func toStrings(ints []int) []string {
	keys := make([]string, len(ints))
	for i, k := range ints {
		keys[i] = strconv.Itoa(k)
	}
	return keys
}
