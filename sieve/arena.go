package sieve

import (
	"fmt"
	"math"
	"sync/atomic"
)

// handle addresses an arena slot. Slot 0 is reserved so the zero handle
// means "none". The generation tells successive occupants of a slot apart.
type handle struct {
	idx uint32
	gen uint32
}

var noHandle handle

func (h handle) valid() bool {
	return h.idx != 0
}

// entry is one cached item plus its list links.
type entry[K comparable, V any] struct {
	key     K
	value   V
	visited atomic.Bool
	prev    handle // toward head (newer)
	next    handle // toward tail (older)
	linked  bool
}

type slot[K comparable, V any] struct {
	entry    entry[K, V]
	gen      uint32
	occupied bool
	nextFree uint32
}

// arena owns every entry. Freed slots go on a singly linked free list and
// are handed out again before the slot slice grows.
type arena[K comparable, V any] struct {
	slots    []slot[K, V]
	freeHead uint32
	live     int
}

func newArena[K comparable, V any](capacity int) *arena[K, V] {
	return &arena[K, V]{slots: make([]slot[K, V], 1, capacity+1)}
}

func (a *arena[K, V]) allocate(key K, value V) handle {
	var idx uint32
	if a.freeHead != 0 {
		idx = a.freeHead
		a.freeHead = a.slots[idx].nextFree
	} else {
		if uint64(len(a.slots)) > math.MaxUint32 {
			panic("sieve: arena slot space exhausted")
		}
		idx = uint32(len(a.slots)) //nolint:gosec // bounded above
		a.slots = append(a.slots, slot[K, V]{})
	}

	s := &a.slots[idx]
	s.occupied = true
	s.nextFree = 0
	s.entry.key = key
	s.entry.value = value
	s.entry.visited.Store(false)
	s.entry.prev = noHandle
	s.entry.next = noHandle
	s.entry.linked = false
	a.live++

	return handle{idx: idx, gen: s.gen}
}

func (a *arena[K, V]) occupied(h handle) (*slot[K, V], error) {
	if !h.valid() || int(h.idx) >= len(a.slots) {
		return nil, fmt.Errorf("%w: slot %d out of range", ErrInvalidHandle, h.idx)
	}
	s := &a.slots[h.idx]
	if !s.occupied || s.gen != h.gen {
		return nil, fmt.Errorf("%w: slot %d generation %d is stale", ErrInvalidHandle, h.idx, h.gen)
	}
	return s, nil
}

func (a *arena[K, V]) get(h handle) (*entry[K, V], error) {
	s, err := a.occupied(h)
	if err != nil {
		return nil, err
	}
	return &s.entry, nil
}

// free releases the slot behind h. The entry must already be unlinked.
func (a *arena[K, V]) free(h handle) error {
	s, err := a.occupied(h)
	if err != nil {
		return err
	}
	if s.entry.linked {
		return fmt.Errorf("%w: slot %d freed while linked", ErrLinked, h.idx)
	}

	var (
		zeroK K
		zeroV V
	)
	s.entry.key = zeroK
	s.entry.value = zeroV
	s.entry.visited.Store(false)
	s.occupied = false
	s.gen++
	s.nextFree = a.freeHead
	a.freeHead = h.idx
	a.live--

	return nil
}

func (a *arena[K, V]) len() int {
	return a.live
}
