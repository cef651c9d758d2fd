// Package fixture holds generators of random inputs for tests that need more
// senders or withdrawals than a generation run produces.
package fixture

import (
	"github.com/zkrollup/fixturegen/rng"
	"github.com/zkrollup/fixturegen/witness"
)

// NewTxRequestsGenerator with some random parameters.
func NewTxRequestsGenerator() *TxRequestsGenerator {
	return new(TxRequestsGenerator).
		WithSeed(0).
		WithSignRatio(1, 1)
}

// TxRequestsGenerator generates sender requests with distinct random keys.
// Every Next call draws a fresh Tx and key from the same stream.
type TxRequestsGenerator struct {
	rng *rng.Source

	signNum, signDen int
}

// WithSeed update randomness source.
func (g *TxRequestsGenerator) WithSeed(seed uint64) *TxRequestsGenerator {
	g.rng = rng.New(seed)
	return g
}

// WithSignRatio makes roughly num out of den senders return their signature.
func (g *TxRequestsGenerator) WithSignRatio(num, den int) *TxRequestsGenerator {
	g.signNum, g.signDen = num, den
	return g
}

// Next generates a TxRequest.
func (g *TxRequestsGenerator) Next() witness.TxRequest {
	willSign := g.rng.Intn(g.signDen) < g.signNum
	return witness.RandomTxRequest(g.rng, willSign)
}

// NextN generates n TxRequests.
func (g *TxRequestsGenerator) NextN(n int) []witness.TxRequest {
	reqs := make([]witness.TxRequest, n)
	for i := range reqs {
		reqs[i] = g.Next()
	}
	return reqs
}
