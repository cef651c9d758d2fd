package rng

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSameSeedSameStream(t *testing.T) {
	a, b := New(0), New(0)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Bytes32(), b.Bytes32())
		require.Equal(t, a.Address(), b.Address())
		require.Equal(t, a.Uint32(), b.Uint32())
	}
	require.NotEqual(t, New(0).Bytes32(), New(1).Bytes32())
}

func TestStreamOrderMatters(t *testing.T) {
	a, b := New(7), New(7)
	first := a.Bytes32()
	_ = b.Address()
	require.NotEqual(t, first, b.Bytes32())
}

func TestUint32Range(t *testing.T) {
	s := New(3)
	for i := 0; i < 1000; i++ {
		v := s.Uint32Range(1, 4)
		require.GreaterOrEqual(t, v, uint32(1))
		require.Less(t, v, uint32(4))
	}
	require.Panics(t, func() { s.Uint32Range(2, 2) })
}

func TestScalar(t *testing.T) {
	s := New(5)
	mod := big.NewInt(97)
	for i := 0; i < 1000; i++ {
		v := s.Scalar(mod)
		require.Equal(t, 1, v.Sign())
		require.Equal(t, -1, v.Cmp(mod))
	}
}
