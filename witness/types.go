// Package witness builds block validity witnesses against in-memory rollup
// state, threads them into a chain and compacts them into FullBlock records.
package witness

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/hash"
	"github.com/zkrollup/fixturegen/rng"
	"github.com/zkrollup/fixturegen/signing"
)

const (
	// NumSendersInBlock is the fixed number of sender slots in a block.
	NumSendersInBlock = 128
	// AccountIDBytes is the width of a packed account id.
	AccountIDBytes = 5
	// DummyAccountID pads unused sender slots of a non-registration block.
	DummyAccountID = 1

	maxAccountID = 1<<(8*AccountIDBytes) - 1
)

// ErrAccountIDOverflow is returned when an account id does not fit 5 bytes.
var ErrAccountIDOverflow = errors.New("account id overflows 40 bits")

// Tx is the part of a sender's transaction that is committed to in a block.
type Tx struct {
	TransferTreeRoot types.Bytes32 `json:"transferTreeRoot"`
	Nonce            uint32        `json:"nonce"`
}

// RandomTx draws the transfer tree root, then the nonce.
func RandomTx(r *rng.Source) Tx {
	return Tx{
		TransferTreeRoot: r.Bytes32(),
		Nonce:            r.Uint32(),
	}
}

// Hash is keccak256(transferTreeRoot ‖ uint32 nonce).
func (tx *Tx) Hash() types.Bytes32 {
	return hash.NewPacker(36).Bytes32(tx.TransferTreeRoot).Uint32(tx.Nonce).Hash()
}

// TxRequest is a sender's transaction together with its key.
type TxRequest struct {
	Tx            Tx
	SenderKey     signing.KeySet
	WillReturnSig bool
}

// RandomTxRequest draws a Tx and then the sender key.
func RandomTxRequest(r *rng.Source, willReturnSig bool) TxRequest {
	tx := RandomTx(r)
	return TxRequest{
		Tx:            tx,
		SenderKey:     signing.RandomKeySet(r),
		WillReturnSig: willReturnSig,
	}
}

// Block is the block header posted to L1.
type Block struct {
	PrevBlockHash   types.Bytes32 `json:"prevBlockHash"`
	DepositTreeRoot types.Bytes32 `json:"depositTreeRoot"`
	SignatureHash   types.Bytes32 `json:"signatureHash"`
	Timestamp       uint64        `json:"timestamp"`
	BlockNumber     uint32        `json:"blockNumber"`
}

// Hash is keccak256(prev ‖ depositTreeRoot ‖ signatureHash ‖ uint64 timestamp ‖ uint32 blockNumber).
func (b *Block) Hash() types.Bytes32 {
	return hash.NewPacker(108).
		Bytes32(b.PrevBlockHash).
		Bytes32(b.DepositTreeRoot).
		Bytes32(b.SignatureHash).
		Uint64(b.Timestamp).
		Uint32(b.BlockNumber).
		Hash()
}

// BlockSignPayload is what the senders of a block sign.
type BlockSignPayload struct {
	IsRegistrationBlock bool          `json:"isRegistrationBlock"`
	TxTreeRoot          types.Bytes32 `json:"txTreeRoot"`
	Expiry              uint64        `json:"expiry"`
	BlockBuilderAddress types.Address `json:"blockBuilderAddress"`
	BlockBuilderNonce   uint32        `json:"blockBuilderNonce"`
}

func (p *BlockSignPayload) pack(pk *hash.Packer) *hash.Packer {
	return pk.Bool(p.IsRegistrationBlock).
		Bytes32(p.TxTreeRoot).
		Uint64(p.Expiry).
		Address(p.BlockBuilderAddress).
		Uint32(p.BlockBuilderNonce)
}

// Hash is the digest hashed onto G2 to get the message point.
func (p *BlockSignPayload) Hash() types.Bytes32 {
	return p.pack(hash.NewPacker(68)).Hash()
}

// SignatureContent is the aggregated signature of a block and what it commits to.
type SignatureContent struct {
	BlockSignPayload BlockSignPayload `json:"blockSignPayload"`
	SenderFlag       types.Bytes16    `json:"senderFlag"`
	PubkeyHash       types.Bytes32    `json:"pubkeyHash"`
	AccountIDHash    types.Bytes32    `json:"accountIdHash"`
	AggPubkey        signing.FlatG1   `json:"aggPubkey"`
	AggSignature     signing.FlatG2   `json:"aggSignature"`
	MessagePoint     signing.FlatG2   `json:"messagePoint"`
}

// Hash is keccak256 over the packed payload, flag, hashes and the ten curve words.
func (s *SignatureContent) Hash() types.Bytes32 {
	pk := s.BlockSignPayload.pack(hash.NewPacker(468)).
		Bytes16(s.SenderFlag).
		Bytes32(s.PubkeyHash).
		Bytes32(s.AccountIDHash)
	for _, w := range s.AggPubkey {
		pk.Bytes32(w)
	}
	for _, w := range s.AggSignature {
		pk.Bytes32(w)
	}
	for _, w := range s.MessagePoint {
		pk.Bytes32(w)
	}
	return pk.Hash()
}

// PubkeyHash is keccak256 over the 128 sender pubkeys as uint256.
func PubkeyHash(pubkeys *[NumSendersInBlock]types.U256) types.Bytes32 {
	pk := hash.NewPacker(NumSendersInBlock * types.Bytes32Length)
	for i := range pubkeys {
		pk.U256(&pubkeys[i])
	}
	return pk.Hash()
}

// AccountIDPacked is 128 big-endian 5 byte account ids.
type AccountIDPacked [NumSendersInBlock * AccountIDBytes]byte

// PackAccountIDs packs ids and pads the remaining slots with the dummy id.
func PackAccountIDs(ids []uint64) (*AccountIDPacked, error) {
	if len(ids) > NumSendersInBlock {
		return nil, fmt.Errorf("%w: %d ids", ErrTooManySenders, len(ids))
	}
	var packed AccountIDPacked
	for i := range NumSendersInBlock {
		id := uint64(DummyAccountID)
		if i < len(ids) {
			id = ids[i]
		}
		if id > maxAccountID {
			return nil, fmt.Errorf("%w: %d", ErrAccountIDOverflow, id)
		}
		packed.put(i, id)
	}
	return &packed, nil
}

func (p *AccountIDPacked) put(i int, id uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], id)
	copy(p[i*AccountIDBytes:(i+1)*AccountIDBytes], buf[8-AccountIDBytes:])
}

// ID returns the id in slot i.
func (p *AccountIDPacked) ID(i int) uint64 {
	var buf [8]byte
	copy(buf[8-AccountIDBytes:], p[i*AccountIDBytes:(i+1)*AccountIDBytes])
	return binary.BigEndian.Uint64(buf[:])
}

// IDs returns all 128 ids, padding included.
func (p *AccountIDPacked) IDs() []uint64 {
	ids := make([]uint64, NumSendersInBlock)
	for i := range ids {
		ids[i] = p.ID(i)
	}
	return ids
}

// Hash is keccak256 of the packed bytes.
func (p *AccountIDPacked) Hash() types.Bytes32 {
	return hash.Sum(p[:])
}

// TrimmedBytes returns the packed ids with trailing dummy ids dropped.
func (p *AccountIDPacked) TrimmedBytes() []byte {
	n := NumSendersInBlock
	for n > 0 && p.ID(n-1) == DummyAccountID {
		n--
	}
	out := make([]byte, n*AccountIDBytes)
	copy(out, p[:n*AccountIDBytes])
	return out
}

// SenderLeaf records whether a sender slot returned its signature.
type SenderLeaf struct {
	Sender       types.U256
	DidReturnSig bool
}

// Hash is keccak256(uint256 sender ‖ uint32 didReturnSig).
func (l *SenderLeaf) Hash() types.Bytes32 {
	return hash.NewPacker(36).U256(&l.Sender).Bool(l.DidReturnSig).Hash()
}
