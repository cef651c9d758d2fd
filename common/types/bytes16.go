package types

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Bytes16Length is the size of the sender flag.
const Bytes16Length = 16

// Bytes16 is a 128 bit big-endian bit set.
type Bytes16 [Bytes16Length]byte

// Bytes returns the underlying bytes.
func (b Bytes16) Bytes() []byte { return b[:] }

// String implements fmt.Stringer.
func (b Bytes16) String() string {
	return hexutil.Encode(b[:])
}

// Bit reports whether bit i is set. Bit 0 is the most significant bit of the first byte.
func (b Bytes16) Bit(i int) bool {
	return b[i/8]&(0x80>>(i%8)) != 0
}

// SetBit sets bit i.
func (b *Bytes16) SetBit(i int) {
	b[i/8] |= 0x80 >> (i % 8)
}

// IsZero reports whether no bit is set.
func (b Bytes16) IsZero() bool {
	return b == Bytes16{}
}

// MarshalText implements encoding.TextMarshaler.
func (b Bytes16) MarshalText() ([]byte, error) {
	return hexutil.Bytes(b[:]).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes16) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Bytes16", input, b[:])
}
