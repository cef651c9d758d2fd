package trees

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
	"github.com/spacemeshos/go-scale"
	"github.com/stretchr/testify/require"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/hash"
)

func leaves(n int) []types.Bytes32 {
	out := make([]types.Bytes32, n)
	for i := range out {
		out[i] = hash.Sum([]byte{byte(i)})
	}
	return out
}

func TestRoot_Empty(t *testing.T) {
	require.Equal(t, types.Bytes32{}, Root(nil))
	require.Equal(t, types.Bytes32{}, NewBlockHashTree().Root())
	require.Equal(t, types.Bytes32{}, NewDepositTree().Root())
}

func TestRoot_TwoLeaves(t *testing.T) {
	l := leaves(2)
	require.Equal(t, hash.Sum(l[0][:], l[1][:]), Root(l))
}

func TestRoot_OrderMatters(t *testing.T) {
	l := leaves(4)
	swapped := []types.Bytes32{l[1], l[0], l[2], l[3]}
	require.NotEqual(t, Root(l), Root(swapped))
}

func TestProve_Verify(t *testing.T) {
	for _, n := range []int{2, 4, 8} {
		l := leaves(n)
		for i := range l {
			root, proof, err := Prove(l, uint64(i))
			require.NoError(t, err)
			require.Equal(t, Root(l), root)

			ok, err := VerifyProof(root, l[i], uint64(i), proof)
			require.NoError(t, err)
			require.True(t, ok, "n=%d i=%d", n, i)

			ok, err = VerifyProof(root, hash.Sum([]byte("other")), uint64(i), proof)
			require.NoError(t, err)
			require.False(t, ok)
		}
	}
}

func TestProve_OutOfRange(t *testing.T) {
	_, _, err := Prove(leaves(2), 2)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestAccountTree_Reserved(t *testing.T) {
	tree := NewAccountTree()
	require.Equal(t, FirstAccountID, tree.Len())

	id, ok := tree.Index(uint256.NewInt(1))
	require.True(t, ok)
	require.EqualValues(t, 1, id)

	id, err := tree.Insert(uint256.NewInt(99), 5)
	require.NoError(t, err)
	require.EqualValues(t, FirstAccountID, id)
}

func TestAccountTree_InsertUpdate(t *testing.T) {
	tree := NewAccountTree()
	before := tree.Root()
	key := uint256.NewInt(1234)

	require.ErrorIs(t, tree.Update(key, 1), ErrAccountMissing)

	_, err := tree.Insert(uint256.NewInt(4321), 1)
	require.NoError(t, err)
	before = tree.Root()
	_, err = tree.Insert(key, 1)
	require.NoError(t, err)
	afterInsert := tree.Root()
	require.NotEqual(t, before, afterInsert)

	_, err = tree.Insert(key, 2)
	require.ErrorIs(t, err, ErrAccountExists)

	require.NoError(t, tree.Update(key, 2))
	require.NotEqual(t, afterInsert, tree.Root())

	leaf, ok := tree.Get(key)
	require.True(t, ok)
	require.EqualValues(t, 2, leaf.Value)

	id, _ := tree.Index(key)
	proof, err := tree.Prove(id)
	require.NoError(t, err)
	ok, err = VerifyProof(tree.Root(), leaf.Hash(), id, proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestBlockHashTree(t *testing.T) {
	tree := NewBlockHashTree()
	_, ok := tree.Last()
	require.False(t, ok)

	l := leaves(3)
	for i, h := range l {
		require.EqualValues(t, i, tree.Push(h))
	}
	last, ok := tree.Last()
	require.True(t, ok)
	require.Equal(t, l[2], last)
	require.Equal(t, Root(l), tree.Root())

	leaf, ok := tree.Leaf(1)
	require.True(t, ok)
	require.Equal(t, l[1], leaf)
	_, ok = tree.Leaf(3)
	require.False(t, ok)
}

func TestScale_RoundTrip(t *testing.T) {
	accounts := NewAccountTree()
	_, err := accounts.Insert(uint256.NewInt(77), 3)
	require.NoError(t, err)
	blocks := NewBlockHashTree()
	for _, h := range leaves(3) {
		blocks.Push(h)
	}

	var buf bytes.Buffer
	enc := scale.NewEncoder(&buf)
	_, err = accounts.EncodeScale(enc)
	require.NoError(t, err)
	_, err = blocks.EncodeScale(enc)
	require.NoError(t, err)

	dec := scale.NewDecoder(&buf)
	var gotAccounts AccountTree
	_, err = gotAccounts.DecodeScale(dec)
	require.NoError(t, err)
	var gotBlocks BlockHashTree
	_, err = gotBlocks.DecodeScale(dec)
	require.NoError(t, err)

	require.Equal(t, accounts.Root(), gotAccounts.Root())
	require.Equal(t, blocks.Root(), gotBlocks.Root())
	id, ok := gotAccounts.Index(uint256.NewInt(77))
	require.True(t, ok)
	require.EqualValues(t, FirstAccountID, id)
}

func TestRoot_SingleLeaf(t *testing.T) {
	l := leaves(1)
	require.Equal(t, l[0], Root(l))
}
