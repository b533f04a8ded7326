package sieve

// index maps a key to the handle of its entry.
type index[K comparable] struct {
	m map[K]handle
}

func newIndex[K comparable](capacity int) index[K] {
	return index[K]{m: make(map[K]handle, capacity)}
}

func (x index[K]) lookup(key K) (handle, bool) {
	h, ok := x.m[key]
	return h, ok
}

func (x index[K]) insert(key K, h handle) {
	x.m[key] = h
}

func (x index[K]) remove(key K) {
	delete(x.m, key)
}

func (x index[K]) len() int {
	return len(x.m)
}
