// Package pairing produces standalone BN254 points for pairing precompile tests.
package pairing

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/zkrollup/fixturegen/rng"
	"github.com/zkrollup/fixturegen/signing"
)

// TestData is one G1 point and two G2 points with no relation between them.
type TestData struct {
	AggPubkey    signing.FlatG1 `json:"aggPubkey"`
	AggSignature signing.FlatG2 `json:"aggSignature"`
	MessagePoint signing.FlatG2 `json:"messagePoint"`
}

// Generate draws three nonzero scalars in the order aggPubkey, aggSignature,
// messagePoint and multiplies the group generators by them.
func Generate(r *rng.Source) *TestData {
	_, _, g1, g2 := bn254.Generators()
	order := signing.Order()

	var (
		pk       bn254.G1Affine
		sig, msg bn254.G2Affine
	)
	pk.ScalarMultiplication(&g1, r.Scalar(order))
	sig.ScalarMultiplication(&g2, r.Scalar(order))
	msg.ScalarMultiplication(&g2, r.Scalar(order))
	return &TestData{
		AggPubkey:    signing.FlattenG1(&pk),
		AggSignature: signing.FlattenG2(&sig),
		MessagePoint: signing.FlattenG2(&msg),
	}
}
