// Package trees holds the in-memory account, block hash and deposit trees a
// rollup block is built against. Roots are keccak256 binary Merkle roots. An
// empty tree has the zero root and a single leaf is its own root.
package trees

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/merkle-tree"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/hash"
)

// ErrIndexOutOfRange is returned when a proof is requested for a missing leaf.
var ErrIndexOutOfRange = errors.New("leaf index out of range")

// NodeHash is the merkle-tree hash function: keccak256(left ‖ right).
func NodeHash(_, lChild, rChild []byte) []byte {
	h := hash.Sum(lChild, rChild)
	return h[:]
}

// Root returns the Merkle root of leaves.
func Root(leaves []types.Bytes32) types.Bytes32 {
	if len(leaves) == 0 {
		return types.Bytes32{}
	}
	root, _, err := build(leaves, nil)
	if err != nil {
		// only AddLeaf can fail and it does not fail for a fresh tree
		panic(err)
	}
	return root
}

// Prove returns the Merkle root of leaves and the sibling path of leaves[index].
func Prove(leaves []types.Bytes32, index uint64) (types.Bytes32, []types.Bytes32, error) {
	if index >= uint64(len(leaves)) {
		return types.Bytes32{}, nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(leaves))
	}
	return build(leaves, map[uint64]bool{index: true})
}

// VerifyProof checks that leaf sits at index under root.
func VerifyProof(root, leaf types.Bytes32, index uint64, proof []types.Bytes32) (bool, error) {
	nodes := make([][]byte, len(proof))
	for i := range proof {
		nodes[i] = proof[i].Bytes()
	}
	ok, err := merkle.ValidatePartialTree(
		[]uint64{index},
		[][]byte{leaf.Bytes()},
		nodes,
		root.Bytes(),
		NodeHash,
	)
	if err != nil {
		return false, fmt.Errorf("validate merkle proof: %w", err)
	}
	return ok, nil
}

func build(leaves []types.Bytes32, prove map[uint64]bool) (types.Bytes32, []types.Bytes32, error) {
	if len(leaves) == 1 {
		return leaves[0], []types.Bytes32{}, nil
	}
	builder := merkle.NewTreeBuilder().WithHashFunc(NodeHash)
	if prove != nil {
		builder = builder.WithLeavesToProve(prove)
	}
	tree, err := builder.Build()
	if err != nil {
		return types.Bytes32{}, nil, fmt.Errorf("build merkle tree: %w", err)
	}
	for _, leaf := range leaves {
		if err := tree.AddLeaf(leaf.Bytes()); err != nil {
			return types.Bytes32{}, nil, fmt.Errorf("add leaf: %w", err)
		}
	}
	if prove == nil {
		return types.BytesToBytes32(tree.Root()), nil, nil
	}
	root, nodes := tree.RootAndProof()
	proof := make([]types.Bytes32, len(nodes))
	for i, n := range nodes {
		proof[i] = types.BytesToBytes32(n)
	}
	return types.BytesToBytes32(root), proof, nil
}
