package cache

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// hashKey hashes any registry key type with xxh3.
func hashKey[K Key](key K) uint64 {
	switch k := any(key).(type) {
	case string:
		return xxh3.HashString(k)
	case int:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(k)) //nolint:gosec // bit pattern only
		return xxh3.Hash(b[:])
	default:
		panic("cache: unsupported key type")
	}
}

func hashKey32[K Key](key K) uint32 {
	return uint32(hashKey(key)) //nolint:gosec // truncation intended
}
