package witness

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap"

	"github.com/zkrollup/fixturegen/codec"
	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/log"
	"github.com/zkrollup/fixturegen/trees"
)

type chainOptions struct {
	logger       *zap.Logger
	clock        clockwork.Clock
	expiry       uint64
	builder      types.Address
	builderNonce uint32
}

// ChainOption configures a Chain.
type ChainOption func(*chainOptions)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ChainOption {
	return func(o *chainOptions) {
		o.logger = logger
	}
}

// WithClock sets the clock that stamps blocks. Defaults to a clock frozen at the unix epoch.
func WithClock(clock clockwork.Clock) ChainOption {
	return func(o *chainOptions) {
		o.clock = clock
	}
}

// WithExpiry sets the expiry of every block sign payload. Zero means no expiry.
func WithExpiry(expiry uint64) ChainOption {
	return func(o *chainOptions) {
		o.expiry = expiry
	}
}

// WithBlockBuilder sets the builder address and nonce of every block.
func WithBlockBuilder(addr types.Address, nonce uint32) ChainOption {
	return func(o *chainOptions) {
		o.builder = addr
		o.builderNonce = nonce
	}
}

// Chain owns the rollup trees for a run and threads public inputs from one
// block to the next. It is not safe for concurrent use.
type Chain struct {
	opts chainOptions

	accounts *trees.AccountTree
	blocks   *trees.BlockHashTree
	deposits *trees.DepositTree
	pis      ValidityPublicInputs
}

// NewChain returns a chain at genesis.
func NewChain(opts ...ChainOption) *Chain {
	c := &Chain{
		accounts: trees.NewAccountTree(),
		blocks:   trees.NewBlockHashTree(),
		deposits: trees.NewDepositTree(),
		pis:      Genesis(),
	}
	c.configure(opts)
	return c
}

func (c *Chain) configure(opts []ChainOption) {
	c.opts = chainOptions{
		logger: zap.NewNop(),
		clock:  clockwork.NewFakeClockAt(time.Unix(0, 0)),
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
}

// PublicInputs returns the public inputs after the last block.
func (c *Chain) PublicInputs() ValidityPublicInputs {
	return c.pis
}

// Deposit records an L1 deposit that the next block will commit to.
func (c *Chain) Deposit(depositHash types.Bytes32) {
	c.deposits.Push(depositHash)
	c.pis.PublicState.DepositTreeRoot = c.deposits.Root()
}

// Advance builds the next block from reqs and moves the chain past it. On error
// the chain must be discarded.
func (c *Chain) Advance(isRegistrationBlock bool, reqs []TxRequest) (*ValidityWitness, error) {
	timestamp := uint64(c.opts.clock.Now().Unix())
	vw, _, err := Construct(
		c.pis,
		c.accounts,
		c.blocks,
		c.deposits,
		isRegistrationBlock,
		c.opts.expiry,
		c.opts.builder,
		c.opts.builderNonce,
		reqs,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("construct block %d: %w", c.blocks.Len(), err)
	}
	pis, err := vw.ToValidityPIs()
	if err != nil {
		return nil, fmt.Errorf("validity public inputs: %w", err)
	}
	c.pis = pis
	c.opts.logger.Debug("block constructed",
		log.BlockNumber(pis.PublicState.BlockNumber),
		zap.Bool("registration", isRegistrationBlock),
		zap.Bool("valid", pis.IsValidBlock),
		zap.Int("senders", len(reqs)),
		log.Hex("block_hash", pis.PublicState.BlockHash),
	)
	return vw, nil
}

type chainState struct {
	accounts *trees.AccountTree
	blocks   *trees.BlockHashTree
	deposits *trees.DepositTree
	pis      *ValidityPublicInputs
}

func (s *chainState) EncodeScale(enc *scale.Encoder) (int, error) {
	var total int
	for _, part := range []scale.Encodable{s.accounts, s.blocks, s.deposits, s.pis} {
		n, err := part.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (s *chainState) DecodeScale(dec *scale.Decoder) (int, error) {
	var total int
	for _, part := range []scale.Decodable{s.accounts, s.blocks, s.deposits, s.pis} {
		n, err := part.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// Snapshot encodes the trees and the current public inputs.
func (c *Chain) Snapshot() ([]byte, error) {
	return codec.Encode(&chainState{
		accounts: c.accounts,
		blocks:   c.blocks,
		deposits: c.deposits,
		pis:      &c.pis,
	})
}

// RestoreChain rebuilds a chain from a snapshot. Options are not part of the
// snapshot and must be passed again.
func RestoreChain(data []byte, opts ...ChainOption) (*Chain, error) {
	c := &Chain{
		accounts: &trees.AccountTree{},
		blocks:   trees.NewBlockHashTree(),
		deposits: trees.NewDepositTree(),
	}
	state := &chainState{accounts: c.accounts, blocks: c.blocks, deposits: c.deposits, pis: &c.pis}
	if err := codec.Decode(data, state); err != nil {
		return nil, fmt.Errorf("restore chain: %w", err)
	}
	if err := checkState(&c.pis, c.accounts, c.blocks, c.deposits); err != nil {
		return nil, fmt.Errorf("restore chain: %w", err)
	}
	c.configure(opts)
	return c, nil
}
