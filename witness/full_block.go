package witness

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/signing"
)

// FullBlock is the compact form of a block that is posted to L1.
type FullBlock struct {
	Block     Block            `json:"block"`
	Signature SignatureContent `json:"signature"`
	// set only for registration blocks
	Pubkeys *[]types.U256 `json:"pubkeys"`
	// set whenever the witness carries packed account ids
	AccountIDs *hexutil.Bytes `json:"accountIds"`
	BlockHash  types.Bytes32  `json:"blockHash"`
}

// IsRegistrationBlock reports the block type.
func (b *FullBlock) IsRegistrationBlock() bool {
	return b.Signature.BlockSignPayload.IsRegistrationBlock
}

// ToFullBlock compacts w by dropping dummy pubkeys and trailing dummy account ids.
func ToFullBlock(w *BlockWitness) *FullBlock {
	fb := &FullBlock{
		Block:     w.Block,
		Signature: w.Signature,
		BlockHash: w.Block.Hash(),
	}
	if w.IsRegistrationBlock() {
		pubkeys := make([]types.U256, 0, NumSendersInBlock)
		for i := range w.Pubkeys {
			if !signing.IsDummyPubkey(&w.Pubkeys[i]) {
				pubkeys = append(pubkeys, w.Pubkeys[i])
			}
		}
		fb.Pubkeys = &pubkeys
	}
	if w.AccountIDPacked != nil {
		ids := hexutil.Bytes(w.AccountIDPacked.TrimmedBytes())
		fb.AccountIDs = &ids
	}
	return fb
}
