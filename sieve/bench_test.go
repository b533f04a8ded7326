package sieve

import (
	"strconv"
	"testing"
)

const benchCapacity = 10_000

func benchKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

func BenchmarkGet(b *testing.B) {
	keys := benchKeys(benchCapacity)
	c := MustNew[string, string](benchCapacity)
	for _, k := range keys {
		c.Insert(k, k)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		c.Get(keys[i%benchCapacity])
	}
}

func BenchmarkInsertEvict(b *testing.B) {
	keys := benchKeys(benchCapacity * 20)
	c := MustNew[string, string](benchCapacity)

	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		k := keys[i%len(keys)]
		c.Insert(k, k)
	}
}

func BenchmarkGetParallel(b *testing.B) {
	keys := benchKeys(benchCapacity)
	c := MustNew[string, string](benchCapacity)
	for _, k := range keys {
		c.Insert(k, k)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			c.Get(keys[i%benchCapacity])
			i++
		}
	})
}
