package sieve

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity is returned by New when capacity is not positive.
	ErrInvalidCapacity = errors.New("sieve: capacity must be positive")

	// ErrInvalidHandle means a handle does not name a live arena slot.
	ErrInvalidHandle = errors.New("sieve: invalid handle")

	// ErrNotLinked means a handle was unlinked while not part of the list.
	ErrNotLinked = errors.New("sieve: handle not linked")

	// ErrLinked means a handle was linked twice or freed while linked.
	ErrLinked = errors.New("sieve: handle still linked")

	// ErrEmptyEviction means the eviction scan found an empty list.
	ErrEmptyEviction = errors.New("sieve: eviction on empty list")
)

// invariant panics when err is non-nil. The arena and list only return
// errors on misuse by the cache itself, so there is nothing to recover.
func invariant(err error, op string) {
	if err != nil {
		panic(fmt.Errorf("invariant violation in %s: %w", op, err))
	}
}
