package witness

import (
	"fmt"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/signing"
	"github.com/zkrollup/fixturegen/trees"
)

// SenderTreeRoot is the Merkle root over the sender leaves.
func (t *ValidityTransitionWitness) SenderTreeRoot() types.Bytes32 {
	hashes := make([]types.Bytes32, len(t.SenderLeaves))
	for i := range t.SenderLeaves {
		hashes[i] = t.SenderLeaves[i].Hash()
	}
	return trees.Root(hashes)
}

// ToValidityPIs re-derives the public inputs after the block and checks that
// the witness is internally consistent and links to PrevPublicInputs.
func (w *ValidityWitness) ToValidityPIs() (ValidityPublicInputs, error) {
	bw := &w.BlockWitness
	prev := &w.PrevPublicInputs.PublicState
	switch {
	case bw.Block.PrevBlockHash != prev.BlockHash:
		return ValidityPublicInputs{}, fmt.Errorf("%w: prev block hash", ErrInconsistentWitness)
	case bw.PrevAccountTreeRoot != prev.AccountTreeRoot:
		return ValidityPublicInputs{}, fmt.Errorf("%w: prev account tree root", ErrInconsistentWitness)
	case bw.PrevBlockTreeRoot != prev.BlockTreeRoot:
		return ValidityPublicInputs{}, fmt.Errorf("%w: prev block tree root", ErrInconsistentWitness)
	case bw.Block.SignatureHash != bw.Signature.Hash():
		return ValidityPublicInputs{}, fmt.Errorf("%w: signature hash", ErrInconsistentWitness)
	case bw.Signature.PubkeyHash != PubkeyHash(&bw.Pubkeys):
		return ValidityPublicInputs{}, fmt.Errorf("%w: pubkey hash", ErrInconsistentWitness)
	case (bw.AccountIDPacked == nil) != bw.IsRegistrationBlock():
		return ValidityPublicInputs{}, fmt.Errorf("%w: account ids", ErrInconsistentWitness)
	case bw.AccountIDPacked != nil && bw.Signature.AccountIDHash != bw.AccountIDPacked.Hash():
		return ValidityPublicInputs{}, fmt.Errorf("%w: account id hash", ErrInconsistentWitness)
	}
	if prev.BlockHash != (types.Bytes32{}) && bw.Block.BlockNumber != prev.BlockNumber+1 {
		return ValidityPublicInputs{}, fmt.Errorf("%w: block number %d after %d",
			ErrInconsistentWitness, bw.Block.BlockNumber, prev.BlockNumber)
	}

	accountTreeRoot := prev.AccountTreeRoot
	if w.TransitionWitness.IsValidBlock {
		accountTreeRoot = w.TransitionWitness.NewAccountTreeRoot
	} else if w.TransitionWitness.NewAccountTreeRoot != prev.AccountTreeRoot {
		return ValidityPublicInputs{}, fmt.Errorf("%w: invalid block changed accounts", ErrInconsistentWitness)
	}
	return ValidityPublicInputs{
		PublicState: PublicState{
			BlockTreeRoot:       w.TransitionWitness.NewBlockTreeRoot,
			PrevAccountTreeRoot: prev.AccountTreeRoot,
			AccountTreeRoot:     accountTreeRoot,
			DepositTreeRoot:     bw.Block.DepositTreeRoot,
			BlockHash:           bw.Block.Hash(),
			BlockNumber:         bw.Block.BlockNumber,
		},
		TxTreeRoot:     bw.Signature.BlockSignPayload.TxTreeRoot,
		SenderTreeRoot: w.TransitionWitness.SenderTreeRoot(),
		IsValidBlock:   w.TransitionWitness.IsValidBlock,
	}, nil
}

// VerifySignature checks the aggregated signature of the block with a pairing.
// Blocks without signers carry points at infinity and do not verify.
func (w *BlockWitness) VerifySignature() (bool, error) {
	aggPk, err := w.Signature.AggPubkey.Point()
	if err != nil {
		return false, err
	}
	aggSig, err := w.Signature.AggSignature.Point()
	if err != nil {
		return false, err
	}
	msg, err := w.Signature.MessagePoint.Point()
	if err != nil {
		return false, err
	}
	if aggPk.IsInfinity() {
		return false, nil
	}
	return signing.Verify(&aggPk, &aggSig, &msg)
}
