package hash

import (
	"encoding/binary"

	"github.com/zkrollup/fixturegen/common/types"
)

// Packer builds the tightly packed encoding used by solidity's abi.encodePacked:
// integers are big-endian at their declared width, fixed byte values are copied
// verbatim and nothing is padded.
type Packer struct {
	buf []byte
}

// NewPacker returns a Packer with room for size bytes.
func NewPacker(size int) *Packer {
	return &Packer{buf: make([]byte, 0, size)}
}

// Bytes32 appends a bytes32 value.
func (p *Packer) Bytes32(v types.Bytes32) *Packer {
	p.buf = append(p.buf, v[:]...)
	return p
}

// Bytes16 appends a bytes16 value.
func (p *Packer) Bytes16(v types.Bytes16) *Packer {
	p.buf = append(p.buf, v[:]...)
	return p
}

// Address appends a 20 byte address.
func (p *Packer) Address(v types.Address) *Packer {
	p.buf = append(p.buf, v[:]...)
	return p
}

// Uint32 appends a uint32.
func (p *Packer) Uint32(v uint32) *Packer {
	p.buf = binary.BigEndian.AppendUint32(p.buf, v)
	return p
}

// Uint64 appends a uint64.
func (p *Packer) Uint64(v uint64) *Packer {
	p.buf = binary.BigEndian.AppendUint64(p.buf, v)
	return p
}

// Bool appends a boolean as uint32, which is how the rollup contracts pack block flags.
func (p *Packer) Bool(v bool) *Packer {
	if v {
		return p.Uint32(1)
	}
	return p.Uint32(0)
}

// U256 appends a uint256.
func (p *Packer) U256(v *types.U256) *Packer {
	b := v.Bytes32()
	p.buf = append(p.buf, b[:]...)
	return p
}

// Raw appends b verbatim.
func (p *Packer) Raw(b []byte) *Packer {
	p.buf = append(p.buf, b...)
	return p
}

// Encoded returns the packed bytes.
func (p *Packer) Encoded() []byte {
	return p.buf
}

// Hash returns keccak256 of the packed bytes.
func (p *Packer) Hash() types.Bytes32 {
	return Sum(p.buf)
}
