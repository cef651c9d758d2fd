package trees

import (
	"github.com/spacemeshos/go-scale"

	"github.com/zkrollup/fixturegen/common/types"
)

// maxLeaves bounds decoded snapshots.
const maxLeaves = 1 << 20

// hashList is an append-only list of 32 byte leaves.
type hashList struct {
	leaves []types.Bytes32
}

func (l *hashList) push(leaf types.Bytes32) uint64 {
	l.leaves = append(l.leaves, leaf)
	return uint64(len(l.leaves) - 1)
}

func (l *hashList) Len() int {
	return len(l.leaves)
}

func (l *hashList) Root() types.Bytes32 {
	return Root(l.leaves)
}

// Leaf returns the leaf at index.
func (l *hashList) Leaf(index uint64) (types.Bytes32, bool) {
	if index >= uint64(len(l.leaves)) {
		return types.Bytes32{}, false
	}
	return l.leaves[index], true
}

// Prove returns the sibling path of the leaf at index.
func (l *hashList) Prove(index uint64) ([]types.Bytes32, error) {
	_, proof, err := Prove(l.leaves, index)
	return proof, err
}

func (l *hashList) EncodeScale(enc *scale.Encoder) (int, error) {
	var total int
	{
		n, err := scale.EncodeCompact32(enc, uint32(len(l.leaves)))
		if err != nil {
			return total, err
		}
		total += n
	}
	for i := range l.leaves {
		n, err := scale.EncodeByteArray(enc, l.leaves[i][:])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (l *hashList) DecodeScale(dec *scale.Decoder) (int, error) {
	var total int
	size, n, err := scale.DecodeCompact32(dec)
	if err != nil {
		return total, err
	}
	total += n
	if size > maxLeaves {
		return total, ErrTooManyLeaves
	}
	l.leaves = make([]types.Bytes32, size)
	for i := range l.leaves {
		n, err := scale.DecodeByteArray(dec, l.leaves[i][:])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// BlockHashTree commits to the hash of every block in the chain, in order.
type BlockHashTree struct {
	hashList
}

// NewBlockHashTree returns an empty tree.
func NewBlockHashTree() *BlockHashTree {
	return &BlockHashTree{}
}

// Push appends a block hash and returns its index, which is the block number.
func (t *BlockHashTree) Push(blockHash types.Bytes32) uint64 {
	return t.push(blockHash)
}

// Last returns the most recent block hash.
func (t *BlockHashTree) Last() (types.Bytes32, bool) {
	if len(t.leaves) == 0 {
		return types.Bytes32{}, false
	}
	return t.leaves[len(t.leaves)-1], true
}

// DepositTree commits to the L1 deposits the rollup has observed.
type DepositTree struct {
	hashList
}

// NewDepositTree returns an empty tree.
func NewDepositTree() *DepositTree {
	return &DepositTree{}
}

// Push appends a deposit hash and returns its index.
func (t *DepositTree) Push(depositHash types.Bytes32) uint64 {
	return t.push(depositHash)
}
