// Package withdrawal samples withdrawals out of a block and folds them into
// the hash chain a withdrawal proof commits to.
package withdrawal

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/hash"
	"github.com/zkrollup/fixturegen/rng"
	"github.com/zkrollup/fixturegen/witness"
)

const (
	// DefaultCount is the number of withdrawals in a generated batch.
	DefaultCount = 3

	numTokens = 2
)

// DefaultAggregator is the first hardhat development account.
var DefaultAggregator = types.MustHexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

// Withdrawal moves Amount of token TokenIndex to Recipient on L1.
type Withdrawal struct {
	Recipient   types.Address `json:"recipient"`
	TokenIndex  uint32        `json:"tokenIndex"`
	Amount      types.U256    `json:"amount"`
	Nullifier   types.Bytes32 `json:"nullifier"`
	BlockHash   types.Bytes32 `json:"blockHash"`
	BlockNumber uint32        `json:"blockNumber"`
}

// HashWithPrevHash is keccak256(prev ‖ recipient ‖ uint32 tokenIndex ‖
// uint256 amount ‖ nullifier ‖ blockHash ‖ uint32 blockNumber).
func (w *Withdrawal) HashWithPrevHash(prev types.Bytes32) types.Bytes32 {
	return hash.NewPacker(156).
		Bytes32(prev).
		Address(w.Recipient).
		Uint32(w.TokenIndex).
		U256(&w.Amount).
		Bytes32(w.Nullifier).
		Bytes32(w.BlockHash).
		Uint32(w.BlockNumber).
		Hash()
}

// HashChain folds withdrawals in order starting from the zero hash.
func HashChain(withdrawals []Withdrawal) types.Bytes32 {
	var h types.Bytes32
	for i := range withdrawals {
		h = withdrawals[i].HashWithPrevHash(h)
	}
	return h
}

// ChainEndProofPublicInputs are the public inputs of the withdrawal chain-end proof.
type ChainEndProofPublicInputs struct {
	LastWithdrawalHash   types.Bytes32 `json:"lastWithdrawalHash"`
	WithdrawalAggregator types.Address `json:"withdrawalAggregator"`
}

// Hash is keccak256(lastWithdrawalHash ‖ withdrawalAggregator).
func (p *ChainEndProofPublicInputs) Hash() types.Bytes32 {
	return hash.NewPacker(52).Bytes32(p.LastWithdrawalHash).Address(p.WithdrawalAggregator).Hash()
}

// Info is a withdrawal batch with its public inputs and their hash.
type Info struct {
	Withdrawals                 []Withdrawal              `json:"withdrawals"`
	WithdrawalProofPublicInputs ChainEndProofPublicInputs `json:"withdrawalProofPublicInputs"`
	PisHash                     types.Bytes32             `json:"pisHash"`
}

// Sample draws a withdrawal bound to block. Values are drawn in the order
// recipient, token index, amount, nullifier.
func Sample(r *rng.Source, block *witness.Block) Withdrawal {
	recipient := r.Address()
	token := r.Uint32Range(0, numTokens)
	amount := r.Uint32Range(1, math.MaxUint32)
	nullifier := r.Bytes32()
	return Withdrawal{
		Recipient:   recipient,
		TokenIndex:  token,
		Amount:      *uint256.NewInt(uint64(amount)),
		Nullifier:   nullifier,
		BlockHash:   block.Hash(),
		BlockNumber: block.BlockNumber,
	}
}

// Build samples n withdrawals out of block and commits to them for aggregator.
func Build(block *witness.FullBlock, r *rng.Source, n int, aggregator types.Address) *Info {
	withdrawals := make([]Withdrawal, n)
	for i := range withdrawals {
		withdrawals[i] = Sample(r, &block.Block)
	}
	pis := ChainEndProofPublicInputs{
		LastWithdrawalHash:   HashChain(withdrawals),
		WithdrawalAggregator: aggregator,
	}
	return &Info{
		Withdrawals:                 withdrawals,
		WithdrawalProofPublicInputs: pis,
		PisHash:                     pis.Hash(),
	}
}
