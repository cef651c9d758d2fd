package trees

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/spacemeshos/go-scale"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/hash"
)

var (
	// ErrAccountExists is returned when inserting a registered key.
	ErrAccountExists = errors.New("account already registered")
	// ErrAccountMissing is returned when updating an unknown key.
	ErrAccountMissing = errors.New("account not registered")
	// ErrTooManyLeaves is returned when a snapshot declares more leaves than allowed.
	ErrTooManyLeaves = errors.New("too many leaves")
)

// FirstAccountID is the id assigned to the first registered account. Ids 0 and
// 1 hold the zero key and the dummy key.
const FirstAccountID = 2

// AccountLeaf is a registered pubkey and the last block it sent a tx in.
type AccountLeaf struct {
	Key   types.U256
	Value uint64
}

// Hash is keccak256(uint256 key ‖ uint64 value).
func (l *AccountLeaf) Hash() types.Bytes32 {
	return hash.NewPacker(40).U256(&l.Key).Uint64(l.Value).Hash()
}

func (l *AccountLeaf) EncodeScale(enc *scale.Encoder) (int, error) {
	var total int
	{
		key := l.Key.Bytes32()
		n, err := scale.EncodeByteArray(enc, key[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact64(enc, l.Value)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (l *AccountLeaf) DecodeScale(dec *scale.Decoder) (int, error) {
	var total int
	{
		var key [32]byte
		n, err := scale.DecodeByteArray(dec, key[:])
		if err != nil {
			return total, err
		}
		l.Key.SetBytes32(key[:])
		total += n
	}
	{
		v, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		l.Value = v
		total += n
	}
	return total, nil
}

// AccountTree maps registered pubkeys to account ids. The id of an account is
// its leaf index.
type AccountTree struct {
	leaves []AccountLeaf
	index  map[types.U256]uint64
}

// NewAccountTree returns a tree holding only the zero key and the dummy key.
func NewAccountTree() *AccountTree {
	t := &AccountTree{index: make(map[types.U256]uint64)}
	t.append(AccountLeaf{})
	t.append(AccountLeaf{Key: *uint256.NewInt(1)})
	return t
}

func (t *AccountTree) append(leaf AccountLeaf) uint64 {
	id := uint64(len(t.leaves))
	t.leaves = append(t.leaves, leaf)
	t.index[leaf.Key] = id
	return id
}

// Len returns the number of leaves, reserved ones included.
func (t *AccountTree) Len() int {
	return len(t.leaves)
}

// Index returns the account id of key.
func (t *AccountTree) Index(key *types.U256) (uint64, bool) {
	id, ok := t.index[*key]
	return id, ok
}

// Get returns the leaf of key.
func (t *AccountTree) Get(key *types.U256) (AccountLeaf, bool) {
	id, ok := t.index[*key]
	if !ok {
		return AccountLeaf{}, false
	}
	return t.leaves[id], true
}

// Insert registers key with value and returns its account id.
func (t *AccountTree) Insert(key *types.U256, value uint64) (uint64, error) {
	if _, ok := t.index[*key]; ok {
		return 0, fmt.Errorf("%w: %s", ErrAccountExists, key.Dec())
	}
	return t.append(AccountLeaf{Key: *key, Value: value}), nil
}

// Update sets the value of a registered key.
func (t *AccountTree) Update(key *types.U256, value uint64) error {
	id, ok := t.index[*key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountMissing, key.Dec())
	}
	t.leaves[id].Value = value
	return nil
}

func (t *AccountTree) hashes() []types.Bytes32 {
	out := make([]types.Bytes32, len(t.leaves))
	for i := range t.leaves {
		out[i] = t.leaves[i].Hash()
	}
	return out
}

// Root returns the Merkle root over leaf hashes.
func (t *AccountTree) Root() types.Bytes32 {
	return Root(t.hashes())
}

// Prove returns the sibling path of account id.
func (t *AccountTree) Prove(id uint64) ([]types.Bytes32, error) {
	_, proof, err := Prove(t.hashes(), id)
	return proof, err
}

func (t *AccountTree) EncodeScale(enc *scale.Encoder) (int, error) {
	return scale.EncodeStructSliceWithLimit(enc, t.leaves, maxLeaves)
}

func (t *AccountTree) DecodeScale(dec *scale.Decoder) (int, error) {
	leaves, n, err := scale.DecodeStructSliceWithLimit[AccountLeaf](dec, maxLeaves)
	if err != nil {
		return n, err
	}
	t.leaves = nil
	t.index = make(map[types.U256]uint64, len(leaves))
	for _, leaf := range leaves {
		t.append(leaf)
	}
	return n, nil
}
