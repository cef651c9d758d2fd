// Package rng is the deterministic randomness source of a generation run.
//
// A Source is a single sequential stream: the order in which values are drawn
// is part of the output contract, so a Source is always passed explicitly and
// never shared through package state.
package rng

import (
	"math/big"
	"math/rand"

	"github.com/seehuhn/mt19937"

	"github.com/zkrollup/fixturegen/common/types"
)

// Source produces reproducible values from a seed.
type Source struct {
	rng *rand.Rand
}

// New seeds a Mersenne Twister with seed.
func New(seed uint64) *Source {
	mt := mt19937.New()
	mt.SeedFromSlice([]uint64{seed})
	return &Source{rng: rand.New(mt)}
}

// Read fills p with random bytes. It never fails.
func (s *Source) Read(p []byte) (int, error) {
	return s.rng.Read(p)
}

// Bytes32 returns a random 32 byte word.
func (s *Source) Bytes32() types.Bytes32 {
	var b types.Bytes32
	_, _ = s.rng.Read(b[:])
	return b
}

// Address returns a random address.
func (s *Source) Address() types.Address {
	var a types.Address
	_, _ = s.rng.Read(a[:])
	return a
}

// Uint32 returns a random uint32.
func (s *Source) Uint32() uint32 {
	return s.rng.Uint32()
}

// Uint32Range returns a value in [lo, hi). It panics if lo >= hi.
func (s *Source) Uint32Range(lo, hi uint32) uint32 {
	if lo >= hi {
		panic("rng: empty range")
	}
	return lo + uint32(s.rng.Int63n(int64(hi-lo)))
}

// Intn returns a value in [0, n).
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// Scalar returns a uniformly distributed value in [1, mod).
// 64 random bytes are reduced so the modulo bias is negligible.
func (s *Source) Scalar(mod *big.Int) *big.Int {
	var buf [64]byte
	for {
		_, _ = s.rng.Read(buf[:])
		v := new(big.Int).SetBytes(buf[:])
		v.Mod(v, mod)
		if v.Sign() != 0 {
			return v
		}
	}
}
