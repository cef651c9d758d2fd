package witness

import (
	"github.com/spacemeshos/go-scale"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/trees"
)

// PublicState is the rollup state after a block.
type PublicState struct {
	BlockTreeRoot       types.Bytes32
	PrevAccountTreeRoot types.Bytes32
	AccountTreeRoot     types.Bytes32
	DepositTreeRoot     types.Bytes32
	BlockHash           types.Bytes32
	BlockNumber         uint32
}

// ValidityPublicInputs are the public inputs of a block validity proof. Block
// N+1 is always built against the inputs derived from block N.
type ValidityPublicInputs struct {
	PublicState    PublicState
	TxTreeRoot     types.Bytes32
	SenderTreeRoot types.Bytes32
	IsValidBlock   bool
}

// Genesis returns the public inputs of freshly initialised trees, before any block.
func Genesis() ValidityPublicInputs {
	accountRoot := trees.NewAccountTree().Root()
	return ValidityPublicInputs{
		PublicState: PublicState{
			BlockTreeRoot:       trees.NewBlockHashTree().Root(),
			PrevAccountTreeRoot: accountRoot,
			AccountTreeRoot:     accountRoot,
			DepositTreeRoot:     trees.NewDepositTree().Root(),
		},
	}
}

func (p *ValidityPublicInputs) EncodeScale(enc *scale.Encoder) (int, error) {
	var total int
	for _, w := range []types.Bytes32{
		p.PublicState.BlockTreeRoot,
		p.PublicState.PrevAccountTreeRoot,
		p.PublicState.AccountTreeRoot,
		p.PublicState.DepositTreeRoot,
		p.PublicState.BlockHash,
		p.TxTreeRoot,
		p.SenderTreeRoot,
	} {
		n, err := scale.EncodeByteArray(enc, w[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact32(enc, p.PublicState.BlockNumber)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeBool(enc, p.IsValidBlock)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (p *ValidityPublicInputs) DecodeScale(dec *scale.Decoder) (int, error) {
	var total int
	for _, w := range []*types.Bytes32{
		&p.PublicState.BlockTreeRoot,
		&p.PublicState.PrevAccountTreeRoot,
		&p.PublicState.AccountTreeRoot,
		&p.PublicState.DepositTreeRoot,
		&p.PublicState.BlockHash,
		&p.TxTreeRoot,
		&p.SenderTreeRoot,
	} {
		n, err := scale.DecodeByteArray(dec, w[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		v, n, err := scale.DecodeCompact32(dec)
		if err != nil {
			return total, err
		}
		p.PublicState.BlockNumber = v
		total += n
	}
	{
		v, n, err := scale.DecodeBool(dec)
		if err != nil {
			return total, err
		}
		p.IsValidBlock = v
		total += n
	}
	return total, nil
}
