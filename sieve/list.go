package sieve

import "fmt"

// list is the insertion-ordered queue. head is the newest entry, tail the
// oldest. Links live in the arena entries; the list only tracks the ends.
type list[K comparable, V any] struct {
	arena *arena[K, V]
	head  handle
	tail  handle
	size  int
}

func (l *list[K, V]) pushFront(h handle) error {
	e, err := l.arena.get(h)
	if err != nil {
		return err
	}
	if e.linked {
		return fmt.Errorf("%w: slot %d pushed twice", ErrLinked, h.idx)
	}

	e.prev = noHandle
	e.next = l.head
	if l.head.valid() {
		old, err := l.arena.get(l.head)
		if err != nil {
			return err
		}
		old.prev = h
	} else {
		l.tail = h
	}
	l.head = h
	e.linked = true
	l.size++

	return nil
}

func (l *list[K, V]) unlink(h handle) error {
	e, err := l.arena.get(h)
	if err != nil {
		return err
	}
	if !e.linked {
		return fmt.Errorf("%w: slot %d", ErrNotLinked, h.idx)
	}

	if e.prev.valid() {
		p, err := l.arena.get(e.prev)
		if err != nil {
			return err
		}
		p.next = e.next
	} else {
		l.head = e.next
	}
	if e.next.valid() {
		n, err := l.arena.get(e.next)
		if err != nil {
			return err
		}
		n.prev = e.prev
	} else {
		l.tail = e.prev
	}

	e.prev = noHandle
	e.next = noHandle
	e.linked = false
	l.size--

	return nil
}

func (l *list[K, V]) front() handle {
	return l.head
}

func (l *list[K, V]) back() handle {
	return l.tail
}

// prevOf returns the neighbour of h on the head side, or noHandle.
func (l *list[K, V]) prevOf(h handle) (handle, error) {
	e, err := l.arena.get(h)
	if err != nil {
		return noHandle, err
	}
	if !e.linked {
		return noHandle, fmt.Errorf("%w: slot %d", ErrNotLinked, h.idx)
	}
	return e.prev, nil
}

// walk calls fn for every entry from head to tail until fn returns false.
func (l *list[K, V]) walk(fn func(h handle, e *entry[K, V]) bool) error {
	for h := l.head; h.valid(); {
		e, err := l.arena.get(h)
		if err != nil {
			return err
		}
		next := e.next
		if !fn(h, e) {
			return nil
		}
		h = next
	}
	return nil
}

func (l *list[K, V]) len() int {
	return l.size
}
