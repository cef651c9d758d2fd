package hash

import (
	gohash "hash"
	"sync"
)

// pool amortizes allocations of keccak hashers.
var pool = &sync.Pool{
	New: func() any {
		return New()
	},
}

// GetHasher gets a keccak hasher from the pool. The hasher is always reset.
func GetHasher() gohash.Hash {
	h := pool.Get().(gohash.Hash)
	h.Reset()
	return h
}

// PutHasher returns the hasher back to the pool.
func PutHasher(h gohash.Hash) {
	pool.Put(h)
}
