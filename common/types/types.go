// Package types holds the fixed-size values shared by every fixture: 32 byte
// words, addresses, 256-bit integers and the 16 byte sender flag.
package types

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const (
	// Bytes32Length is the size of a hash or a field element encoding.
	Bytes32Length = common.HashLength
	// AddressLength is the size of an L1 address.
	AddressLength = common.AddressLength
)

// Bytes32 is a 32 byte word, hex encoded in JSON.
type Bytes32 = common.Hash

// Address is a 20 byte L1 address, hex encoded in JSON.
type Address = common.Address

// U256 is an unsigned 256-bit integer, decimal encoded in JSON.
type U256 = uint256.Int

// BytesToBytes32 sets b to a Bytes32, cropping from the left if b is longer.
func BytesToBytes32(b []byte) Bytes32 {
	return common.BytesToHash(b)
}

// U256ToBytes32 returns the big-endian encoding of v.
func U256ToBytes32(v *U256) Bytes32 {
	return Bytes32(v.Bytes32())
}

// HexToAddress parses a 0x-prefixed hex address.
func HexToAddress(s string) (Address, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") || !common.IsHexAddress(s) {
		return Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// MustHexToAddress is HexToAddress for constants.
func MustHexToAddress(s string) Address {
	addr, err := HexToAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}
