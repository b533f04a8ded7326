package sieve

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func identityHash(k int) uint64 {
	return uint64(k) //nolint:gosec // test keys are non-negative
}

func TestNewShardedValidation(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		shards   int
		hash     func(int) uint64
		want     error
	}{
		{"zero capacity", 0, 4, identityHash, ErrInvalidCapacity},
		{"zero shards", 8, 0, identityHash, ErrInvalidShards},
		{"nil hash", 8, 4, nil, ErrInvalidShards},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSharded[int, int](tc.capacity, tc.shards, tc.hash); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestShardedCapacitySplit(t *testing.T) {
	s, err := NewSharded[int, int](10, 3, identityHash)
	if err != nil {
		t.Fatal(err)
	}
	var caps []int
	for _, c := range s.shards {
		caps = append(caps, c.Cap())
	}
	if diff := cmp.Diff([]int{4, 3, 3}, caps); diff != "" {
		t.Errorf("shard capacities mismatch (-want +got):\n%s", diff)
	}
	if s.Cap() != 10 {
		t.Errorf("Cap() = %d, want 10", s.Cap())
	}

	clamped, err := NewSharded[int, int](2, 8, identityHash)
	if err != nil {
		t.Fatal(err)
	}
	if clamped.Shards() != 2 {
		t.Errorf("Shards() = %d, want 2", clamped.Shards())
	}
}

func TestShardedOperations(t *testing.T) {
	s, err := NewSharded[int, int](8, 4, identityHash)
	if err != nil {
		t.Fatal(err)
	}
	for k := range 100 {
		s.Insert(k, k*10)
		if s.Len() > s.Cap() {
			t.Fatalf("Len() = %d exceeds Cap() = %d", s.Len(), s.Cap())
		}
	}
	if s.Len() != 8 {
		t.Errorf("Len() = %d, want 8", s.Len())
	}

	// 99 and 98 were the latest inserts in their shards.
	for _, k := range []int{99, 98} {
		if v, ok := s.Get(k); !ok || v != k*10 {
			t.Errorf("Get(%d) = %d, %t; want %d, true", k, v, ok, k*10)
		}
	}
	if v, ok := s.Peek(99); !ok || v != 990 {
		t.Errorf("Peek(99) = %d, %t", v, ok)
	}
	if v, hit := s.GetOrInsert(1000, 1); hit || v != 1 {
		t.Errorf("GetOrInsert(1000) = %d, %t; want 1, false", v, hit)
	}
	if !s.Remove(1000) || s.Remove(1000) {
		t.Error("Remove(1000) should succeed exactly once")
	}

	st := s.Stats()
	if st.Inserts != 101 || st.Evictions != 93 || st.Removals != 1 {
		t.Errorf("Stats = %+v, want 101 inserts, 93 evictions, 1 removal", st)
	}

	s.Purge()
	if s.Len() != 0 {
		t.Errorf("Len() = %d after Purge", s.Len())
	}
}
