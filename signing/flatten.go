package signing

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"

	"github.com/zkrollup/fixturegen/common/types"
)

// ErrInvalidPoint is returned when flattened coordinates are not a group element.
var ErrInvalidPoint = errors.New("invalid curve point")

// FlatG1 is a G1 point as {x, y}.
type FlatG1 [2]types.Bytes32

// FlatG2 is a G2 point as {x.im, x.re, y.im, y.re}, the order of the EIP-197
// precompile. The point at infinity is all zeros for both groups.
type FlatG2 [4]types.Bytes32

// FlattenG1 flattens p.
func FlattenG1(p *bn254.G1Affine) FlatG1 {
	return FlatG1{fpWord(&p.X), fpWord(&p.Y)}
}

// FlattenG2 flattens p.
func FlattenG2(p *bn254.G2Affine) FlatG2 {
	return FlatG2{fpWord(&p.X.A1), fpWord(&p.X.A0), fpWord(&p.Y.A1), fpWord(&p.Y.A0)}
}

// Point reads the flattened point back, checking curve and subgroup membership.
func (f FlatG1) Point() (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if err := setWords([]*fp.Element{&p.X, &p.Y}, f[:]); err != nil {
		return p, err
	}
	if !p.IsOnCurve() || !p.IsInSubGroup() {
		return p, ErrInvalidPoint
	}
	return p, nil
}

// Point reads the flattened point back, checking curve and subgroup membership.
func (f FlatG2) Point() (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if err := setWords([]*fp.Element{&p.X.A1, &p.X.A0, &p.Y.A1, &p.Y.A0}, f[:]); err != nil {
		return p, err
	}
	if !p.IsOnCurve() || !p.IsInSubGroup() {
		return p, ErrInvalidPoint
	}
	return p, nil
}

func fpWord(e *fp.Element) types.Bytes32 {
	return types.Bytes32(e.Bytes())
}

func setWords(dst []*fp.Element, words []types.Bytes32) error {
	for i, w := range words {
		if err := dst[i].SetBytesCanonical(w[:]); err != nil {
			return ErrInvalidPoint
		}
	}
	return nil
}
