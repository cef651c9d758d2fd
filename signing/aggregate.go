package signing

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/hash"
)

const messageDST = "FIXTUREGEN-V01-BN254G2_XMD:SHA-256_SVDW_RO_"

// MessagePoint hashes a block sign payload digest onto G2.
func MessagePoint(msg types.Bytes32) (bn254.G2Affine, error) {
	p, err := bn254.HashToG2(msg[:], []byte(messageDST))
	if err != nil {
		return p, fmt.Errorf("hash to g2: %w", err)
	}
	return p, nil
}

// Sign returns PrivKey·H.
func (k KeySet) Sign(h *bn254.G2Affine) bn254.G2Affine {
	var sig bn254.G2Affine
	sig.ScalarMultiplication(h, k.PrivKey)
	return sig
}

// Weight is the per-signer aggregation coefficient keccak(pubkey ‖ pubkeyHash) mod r.
func Weight(pk *types.U256, pubkeyHash types.Bytes32) *big.Int {
	digest := hash.NewPacker(64).U256(pk).Bytes32(pubkeyHash).Hash()
	w := new(big.Int).SetBytes(digest[:])
	return w.Mod(w, fr.Modulus())
}

// Aggregate sums weighted public keys and signatures of signers over h.
// An empty signer set yields the points at infinity.
func Aggregate(signers []KeySet, pubkeyHash types.Bytes32, h *bn254.G2Affine) (bn254.G1Affine, bn254.G2Affine) {
	var (
		aggPk  bn254.G1Affine
		aggSig bn254.G2Affine
	)
	for _, k := range signers {
		w := Weight(&k.Pubkey, pubkeyHash)
		pk := k.PubkeyPoint()
		var wpk bn254.G1Affine
		wpk.ScalarMultiplication(&pk, w)
		aggPk.Add(&aggPk, &wpk)

		sig := k.Sign(h)
		var wsig bn254.G2Affine
		wsig.ScalarMultiplication(&sig, w)
		aggSig.Add(&aggSig, &wsig)
	}
	return aggPk, aggSig
}

// Verify checks e(aggPk, h) == e(G1, aggSig).
func Verify(aggPk *bn254.G1Affine, aggSig, h *bn254.G2Affine) (bool, error) {
	var negG1 bn254.G1Affine
	negG1.Neg(&g1Gen)
	return bn254.PairingCheck(
		[]bn254.G1Affine{*aggPk, negG1},
		[]bn254.G2Affine{*h, *aggSig},
	)
}
