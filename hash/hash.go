// Package hash provides the keccak256 hashing used by every commitment in the
// fixtures, and a solidity-style packed encoder to feed it.
package hash

import (
	gohash "hash"

	"golang.org/x/crypto/sha3"

	"github.com/zkrollup/fixturegen/common/types"
)

// Size is the keccak256 digest size.
const Size = 32

// New returns a fresh legacy keccak256 hasher.
func New() gohash.Hash {
	return sha3.NewLegacyKeccak256()
}

// Sum returns keccak256 over the concatenation of chunks.
func Sum(chunks ...[]byte) types.Bytes32 {
	h := GetHasher()
	defer PutHasher(h)
	for _, chunk := range chunks {
		h.Write(chunk)
	}
	var out types.Bytes32
	h.Sum(out[:0])
	return out
}
