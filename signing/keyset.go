// Package signing holds BN254 signer key material and the weighted signature
// aggregation used by rollup blocks.
package signing

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/holiman/uint256"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/rng"
)

// ErrNotOnCurve is returned when a pubkey has no point on G1.
var ErrNotOnCurve = errors.New("pubkey is not on the curve")

var (
	g1Gen bn254.G1Affine
	g2Gen bn254.G2Affine

	// halfP is (p-1)/2, the largest canonical y coordinate.
	halfP = new(big.Int).Rsh(fp.Modulus(), 1)

	dummyPubkey = uint256.NewInt(1)
)

func init() {
	_, _, g1Gen, g2Gen = bn254.Generators()
}

// Order returns the order of the BN254 groups.
func Order() *big.Int {
	return fr.Modulus()
}

// DummyPubkey returns the placeholder that pads unused sender slots of a block.
func DummyPubkey() types.U256 {
	return *dummyPubkey
}

// IsDummyPubkey reports whether pk is the padding placeholder.
func IsDummyPubkey(pk *types.U256) bool {
	return pk.Eq(dummyPubkey)
}

// KeySet is a signer's key pair. Pubkey is the x coordinate of PrivKey·G1;
// the private key is chosen so that the point has the canonical (smaller) y.
type KeySet struct {
	PrivKey *big.Int
	Pubkey  types.U256
}

// NewKeySet derives the key set of privkey, negating it when needed.
func NewKeySet(privkey *big.Int) KeySet {
	sk := new(big.Int).Mod(privkey, fr.Modulus())
	var pk bn254.G1Affine
	pk.ScalarMultiplication(&g1Gen, sk)
	if !isCanonicalY(&pk.Y) {
		sk.Sub(fr.Modulus(), sk)
		pk.Neg(&pk)
	}
	x := pk.X.Bytes()
	ks := KeySet{PrivKey: sk}
	ks.Pubkey.SetBytes32(x[:])
	return ks
}

// RandomKeySet draws a private key from r.
func RandomKeySet(r *rng.Source) KeySet {
	return NewKeySet(r.Scalar(fr.Modulus()))
}

// PubkeyPoint returns PrivKey·G1.
func (k KeySet) PubkeyPoint() bn254.G1Affine {
	var pk bn254.G1Affine
	pk.ScalarMultiplication(&g1Gen, k.PrivKey)
	return pk
}

// PubkeyToPoint recovers the G1 point with x coordinate pk and canonical y.
func PubkeyToPoint(pk *types.U256) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	b := pk.Bytes32()
	if err := p.X.SetBytesCanonical(b[:]); err != nil {
		return p, ErrNotOnCurve
	}
	// y^2 = x^3 + 3
	var rhs, three fp.Element
	three.SetUint64(3)
	rhs.Square(&p.X).Mul(&rhs, &p.X).Add(&rhs, &three)
	if p.Y.Sqrt(&rhs) == nil {
		return bn254.G1Affine{}, ErrNotOnCurve
	}
	if !isCanonicalY(&p.Y) {
		p.Y.Neg(&p.Y)
	}
	return p, nil
}

func isCanonicalY(y *fp.Element) bool {
	return y.BigInt(new(big.Int)).Cmp(halfP) <= 0
}
