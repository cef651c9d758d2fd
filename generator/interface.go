package generator

import "github.com/zkrollup/fixturegen/witness"

//go:generate mockgen -typed -package=generator -destination=./mocks.go -source=./interface.go

// blockProducer advances the rollup chain by one block.
type blockProducer interface {
	Advance(isRegistrationBlock bool, reqs []witness.TxRequest) (*witness.ValidityWitness, error)
}
