package witness

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/signing"
	"github.com/zkrollup/fixturegen/trees"
)

var (
	ErrTooManySenders      = errors.New("too many senders in block")
	ErrDuplicateSender     = errors.New("duplicate sender pubkey")
	ErrStateMismatch       = errors.New("public inputs do not match tree state")
	ErrAccountNotFound     = errors.New("sender account not registered")
	ErrInconsistentWitness = errors.New("inconsistent validity witness")
)

// BlockWitness is everything needed to re-derive a posted block.
type BlockWitness struct {
	Block     Block
	Signature SignatureContent
	Pubkeys   [NumSendersInBlock]types.U256
	// nil for registration blocks
	AccountIDPacked     *AccountIDPacked
	PrevAccountTreeRoot types.Bytes32
	PrevBlockTreeRoot   types.Bytes32
}

// IsRegistrationBlock reports the block type recorded in the signed payload.
func (w *BlockWitness) IsRegistrationBlock() bool {
	return w.Signature.BlockSignPayload.IsRegistrationBlock
}

// ValidityTransitionWitness is the state transition a block caused.
type ValidityTransitionWitness struct {
	SenderLeaves       []SenderLeaf
	NewAccountTreeRoot types.Bytes32
	NewBlockTreeRoot   types.Bytes32
	IsValidBlock       bool
}

// ValidityWitness is a block witness together with the transition it caused
// from PrevPublicInputs.
type ValidityWitness struct {
	BlockWitness      BlockWitness
	PrevPublicInputs  ValidityPublicInputs
	TransitionWitness ValidityTransitionWitness
}

// TxWitness proves a sender's tx is in the block's tx tree.
type TxWitness struct {
	Tx            Tx
	TxIndex       uint32
	TxTreeRoot    types.Bytes32
	TxMerkleProof []types.Bytes32
}

// Construct builds the next block from reqs against the given trees and applies
// it: the block hash is always appended to blockTree, and accountTree changes
// only if the block is valid. prev must describe the current tree state.
func Construct(
	prev ValidityPublicInputs,
	accountTree *trees.AccountTree,
	blockTree *trees.BlockHashTree,
	depositTree *trees.DepositTree,
	isRegistrationBlock bool,
	expiry uint64,
	builder types.Address,
	builderNonce uint32,
	reqs []TxRequest,
	timestamp uint64,
) (*ValidityWitness, []TxWitness, error) {
	if len(reqs) > NumSendersInBlock {
		return nil, nil, fmt.Errorf("%w: %d", ErrTooManySenders, len(reqs))
	}
	seen := make(map[types.U256]struct{}, len(reqs))
	for _, req := range reqs {
		if _, ok := seen[req.SenderKey.Pubkey]; ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateSender, req.SenderKey.Pubkey.Dec())
		}
		seen[req.SenderKey.Pubkey] = struct{}{}
	}
	if err := checkState(&prev, accountTree, blockTree, depositTree); err != nil {
		return nil, nil, err
	}

	sorted := slices.Clone(reqs)
	slices.SortStableFunc(sorted, func(a, b TxRequest) int {
		return b.SenderKey.Pubkey.Cmp(&a.SenderKey.Pubkey)
	})

	var (
		pubkeys    [NumSendersInBlock]types.U256
		senderFlag types.Bytes16
		signers    []signing.KeySet
	)
	txHashes := make([]types.Bytes32, NumSendersInBlock)
	emptyTx := Tx{}
	for i := range NumSendersInBlock {
		pubkeys[i] = signing.DummyPubkey()
		txHashes[i] = emptyTx.Hash()
	}
	for i, req := range sorted {
		pubkeys[i] = req.SenderKey.Pubkey
		txHashes[i] = req.Tx.Hash()
		if req.WillReturnSig {
			senderFlag.SetBit(i)
			signers = append(signers, req.SenderKey)
		}
	}
	pubkeyHash := PubkeyHash(&pubkeys)

	var (
		packed        *AccountIDPacked
		accountIDHash types.Bytes32
	)
	if !isRegistrationBlock {
		ids := make([]uint64, len(sorted))
		for i, req := range sorted {
			id, ok := accountTree.Index(&req.SenderKey.Pubkey)
			if !ok {
				return nil, nil, fmt.Errorf("%w: %s", ErrAccountNotFound, req.SenderKey.Pubkey.Dec())
			}
			ids[i] = id
		}
		var err error
		packed, err = PackAccountIDs(ids)
		if err != nil {
			return nil, nil, err
		}
		accountIDHash = packed.Hash()
	}

	payload := BlockSignPayload{
		IsRegistrationBlock: isRegistrationBlock,
		TxTreeRoot:          trees.Root(txHashes),
		Expiry:              expiry,
		BlockBuilderAddress: builder,
		BlockBuilderNonce:   builderNonce,
	}
	msgPoint, err := signing.MessagePoint(payload.Hash())
	if err != nil {
		return nil, nil, err
	}
	aggPubkey, aggSignature := signing.Aggregate(signers, pubkeyHash, &msgPoint)
	signature := SignatureContent{
		BlockSignPayload: payload,
		SenderFlag:       senderFlag,
		PubkeyHash:       pubkeyHash,
		AccountIDHash:    accountIDHash,
		AggPubkey:        signing.FlattenG1(&aggPubkey),
		AggSignature:     signing.FlattenG2(&aggSignature),
		MessagePoint:     signing.FlattenG2(&msgPoint),
	}
	block := Block{
		PrevBlockHash:   prev.PublicState.BlockHash,
		DepositTreeRoot: depositTree.Root(),
		SignatureHash:   signature.Hash(),
		Timestamp:       timestamp,
		BlockNumber:     uint32(blockTree.Len()),
	}

	valid := isValid(isRegistrationBlock, expiry, timestamp, signers, accountTree)
	bw := BlockWitness{
		Block:               block,
		Signature:           signature,
		Pubkeys:             pubkeys,
		AccountIDPacked:     packed,
		PrevAccountTreeRoot: accountTree.Root(),
		PrevBlockTreeRoot:   blockTree.Root(),
	}
	senderLeaves := make([]SenderLeaf, NumSendersInBlock)
	for i := range senderLeaves {
		senderLeaves[i] = SenderLeaf{Sender: pubkeys[i], DidReturnSig: senderFlag.Bit(i)}
	}

	if valid {
		for _, k := range signers {
			if isRegistrationBlock {
				_, err = accountTree.Insert(&k.Pubkey, uint64(block.BlockNumber))
			} else {
				err = accountTree.Update(&k.Pubkey, uint64(block.BlockNumber))
			}
			if err != nil {
				return nil, nil, err
			}
		}
	}
	blockTree.Push(block.Hash())

	txWitnesses := make([]TxWitness, len(sorted))
	for i, req := range sorted {
		root, proof, err := trees.Prove(txHashes, uint64(i))
		if err != nil {
			return nil, nil, err
		}
		txWitnesses[i] = TxWitness{
			Tx:            req.Tx,
			TxIndex:       uint32(i),
			TxTreeRoot:    root,
			TxMerkleProof: proof,
		}
	}

	return &ValidityWitness{
		BlockWitness:     bw,
		PrevPublicInputs: prev,
		TransitionWitness: ValidityTransitionWitness{
			SenderLeaves:       senderLeaves,
			NewAccountTreeRoot: accountTree.Root(),
			NewBlockTreeRoot:   blockTree.Root(),
			IsValidBlock:       valid,
		},
	}, txWitnesses, nil
}

func checkState(
	prev *ValidityPublicInputs,
	accountTree *trees.AccountTree,
	blockTree *trees.BlockHashTree,
	depositTree *trees.DepositTree,
) error {
	last, _ := blockTree.Last()
	switch {
	case prev.PublicState.AccountTreeRoot != accountTree.Root():
		return fmt.Errorf("%w: account tree root", ErrStateMismatch)
	case prev.PublicState.BlockTreeRoot != blockTree.Root():
		return fmt.Errorf("%w: block tree root", ErrStateMismatch)
	case prev.PublicState.DepositTreeRoot != depositTree.Root():
		return fmt.Errorf("%w: deposit tree root", ErrStateMismatch)
	case prev.PublicState.BlockHash != last:
		return fmt.Errorf("%w: last block hash", ErrStateMismatch)
	}
	return nil
}

// isValid must be evaluated before the account tree is mutated.
func isValid(
	isRegistrationBlock bool,
	expiry, timestamp uint64,
	signers []signing.KeySet,
	accountTree *trees.AccountTree,
) bool {
	if len(signers) == 0 {
		return false
	}
	if expiry != 0 && timestamp > expiry {
		return false
	}
	if isRegistrationBlock {
		for _, k := range signers {
			if _, ok := accountTree.Index(&k.Pubkey); ok {
				return false
			}
		}
	}
	return true
}
