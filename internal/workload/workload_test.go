package workload

import (
	"strings"
	"testing"
)

func TestZipfDeterministic(t *testing.T) {
	z := Zipf{KeySpace: 1000, Theta: 0.99, Seed: 42}
	a, b := z.Ints(5000), z.Ints(5000)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("key %d differs between runs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestZipfRangeAndSkew(t *testing.T) {
	z := Zipf{KeySpace: 1000, Theta: 0.99, Seed: 7}
	keys := z.Ints(100_000)

	counts := make(map[int]int)
	for _, k := range keys {
		if k < 0 || k >= z.KeySpace {
			t.Fatalf("key %d outside [0, %d)", k, z.KeySpace)
		}
		counts[k]++
	}
	if counts[0] <= counts[500] {
		t.Errorf("key 0 seen %d times, key 500 seen %d times; want skew toward 0", counts[0], counts[500])
	}
}

func TestZipfStrings(t *testing.T) {
	z := Zipf{KeySpace: 10, Theta: 0.8, Seed: 1}
	ints := z.Ints(100)
	strs := z.Keys(100)
	for i := range ints {
		if want := itoa(ints[i]); strs[i] != want {
			t.Fatalf("Keys()[%d] = %q, want %q", i, strs[i], want)
		}
	}
}

func TestScan(t *testing.T) {
	got := strings.Join(Scan(7, 3), ",")
	if want := "0,1,2,0,1,2,0"; got != want {
		t.Errorf("Scan(7, 3) = %s, want %s", got, want)
	}
}

func TestOneHitWonders(t *testing.T) {
	z := Zipf{KeySpace: 100, Theta: 0.99, Seed: 3}
	keys := OneHitWonders(10_000, z, 0.3)

	seen := make(map[string]int)
	once := 0
	for _, k := range keys {
		seen[k]++
		if strings.HasPrefix(k, "once-") {
			once++
		}
	}
	for k, n := range seen {
		if strings.HasPrefix(k, "once-") && n != 1 {
			t.Fatalf("%s requested %d times", k, n)
		}
	}
	if once < 2500 || once > 3500 {
		t.Errorf("%d one-hit keys, want about 3000", once)
	}
}

func itoa(i int) string {
	return toStrings([]int{i})[0]
}
