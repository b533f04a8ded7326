package sieve

import "sync/atomic"

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Inserts   uint64
	Updates   uint64
	Evictions uint64
	Removals  uint64
	// Scanned counts entries examined by the eviction scan over the
	// lifetime of the cache; LastScan covers only the latest eviction.
	Scanned  uint64
	LastScan int
}

// HitRate returns hits as a percentage of lookups, or 0 with no lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

func (s Stats) add(o Stats) Stats {
	s.Hits += o.Hits
	s.Misses += o.Misses
	s.Inserts += o.Inserts
	s.Updates += o.Updates
	s.Evictions += o.Evictions
	s.Removals += o.Removals
	s.Scanned += o.Scanned
	s.LastScan = max(s.LastScan, o.LastScan)
	return s
}

// counters are bumped by readers holding only the shared lock, so every
// field is atomic.
type counters struct {
	hits      atomic.Uint64
	misses    atomic.Uint64
	inserts   atomic.Uint64
	updates   atomic.Uint64
	evictions atomic.Uint64
	removals  atomic.Uint64
	scanned   atomic.Uint64
	lastScan  atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Inserts:   c.inserts.Load(),
		Updates:   c.updates.Load(),
		Evictions: c.evictions.Load(),
		Removals:  c.removals.Load(),
		Scanned:   c.scanned.Load(),
		LastScan:  int(c.lastScan.Load()),
	}
}
