// Package generator runs the fixed fixture generation sequence: a registration
// block, a non-registration block reusing the same sender, an empty block, a
// withdrawal batch out of the last block, and independently the pairing data.
package generator

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/zkrollup/fixturegen/config"
	"github.com/zkrollup/fixturegen/fixture"
	"github.com/zkrollup/fixturegen/log"
	"github.com/zkrollup/fixturegen/pairing"
	"github.com/zkrollup/fixturegen/rng"
	"github.com/zkrollup/fixturegen/witness"
	"github.com/zkrollup/fixturegen/withdrawal"
)

// Opt configures a Generator.
type Opt func(*Generator)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithFs sets the filesystem fixtures are written to.
func WithFs(fs afero.Fs) Opt {
	return func(g *Generator) {
		g.fs = fs
	}
}

// WithClock sets the clock that stamps blocks.
func WithClock(clock clockwork.Clock) Opt {
	return func(g *Generator) {
		g.clock = clock
	}
}

// WithBlockProducer replaces the in-memory chain.
func WithBlockProducer(p blockProducer) Opt {
	return func(g *Generator) {
		g.producer = p
	}
}

// Generator produces the fixtures described by its config.
type Generator struct {
	logger   *zap.Logger
	cfg      config.Config
	fs       afero.Fs
	clock    clockwork.Clock
	producer blockProducer
}

// New creates a Generator. Blocks are stamped with cfg.Timestamp unless
// cfg.WallClock is set.
func New(cfg config.Config, opts ...Opt) *Generator {
	g := &Generator{
		logger: zap.NewNop(),
		cfg:    cfg,
		fs:     afero.NewOsFs(),
	}
	if cfg.WallClock {
		g.clock = clockwork.NewRealClock()
	} else {
		g.clock = clockwork.NewFakeClockAt(time.Unix(int64(cfg.Timestamp), 0))
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Result lists what a run produced.
type Result struct {
	Blocks      []*witness.FullBlock
	Withdrawals *withdrawal.Info
	Files       []string
}

type step struct {
	isRegistrationBlock bool
	reqs                []witness.TxRequest
}

// Run builds the three blocks and the withdrawal batch and writes them.
// Nothing is written unless every block was built.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	r := rng.New(g.cfg.Seed)
	req := witness.RandomTxRequest(r, true)

	producer := g.producer
	if producer == nil {
		producer = witness.NewChain(
			witness.WithLogger(g.logger.Named("chain")),
			witness.WithClock(g.clock),
			witness.WithExpiry(g.cfg.Expiry),
			witness.WithBlockBuilder(g.cfg.BlockBuilder, g.cfg.BuilderNonce),
		)
	}

	steps := []step{
		{isRegistrationBlock: true, reqs: []witness.TxRequest{req}},
		{isRegistrationBlock: false, reqs: []witness.TxRequest{req}},
		{isRegistrationBlock: false},
	}
	res := &Result{}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vw, err := producer.Advance(s.isRegistrationBlock, s.reqs)
		if err != nil {
			return nil, fmt.Errorf("build %s block: %w", blockType(s.isRegistrationBlock), err)
		}
		fb := witness.ToFullBlock(&vw.BlockWitness)
		blocksBuilt.WithLabelValues(
			blockType(s.isRegistrationBlock),
			strconv.FormatBool(vw.TransitionWitness.IsValidBlock),
		).Inc()
		lastBlockNumber.Set(float64(fb.Block.BlockNumber))
		res.Blocks = append(res.Blocks, fb)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	last := res.Blocks[len(res.Blocks)-1]
	res.Withdrawals = withdrawal.Build(last, r, g.cfg.Withdrawals, g.cfg.Aggregator)
	withdrawalsSampled.Add(float64(len(res.Withdrawals.Withdrawals)))
	g.logger.Info("withdrawals sampled",
		log.BlockNumber(last.Block.BlockNumber),
		zap.Int("count", len(res.Withdrawals.Withdrawals)),
		log.Hex("last_hash", res.Withdrawals.WithdrawalProofPublicInputs.LastWithdrawalHash),
	)

	w, err := g.writer()
	if err != nil {
		return nil, err
	}
	for _, fb := range res.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := w.WriteBlock(fb)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, path)
	}
	path, err := w.WriteWithdrawalInfo(res.Withdrawals)
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, path)

	runDuration.WithLabelValues("blocks").Observe(time.Since(start).Seconds())
	g.logger.Info("fixtures generated",
		zap.Uint64("seed", g.cfg.Seed),
		zap.String("dir", w.Dir()),
		zap.Strings("files", res.Files),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// RunPairing writes the pairing fixture from its own stream seeded with the
// configured seed.
func (g *Generator) RunPairing(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()
	data := pairing.Generate(rng.New(g.cfg.Seed))
	w, err := g.writer()
	if err != nil {
		return "", err
	}
	path, err := w.WritePairing(data)
	if err != nil {
		return "", err
	}
	runDuration.WithLabelValues("pairing").Observe(time.Since(start).Seconds())
	return path, nil
}

func (g *Generator) writer() (*fixture.Writer, error) {
	w, err := fixture.NewWriter(g.fs, g.cfg.OutputDir, fixture.WithLogger(g.logger.Named("writer")))
	if err != nil {
		return nil, fmt.Errorf("fixture writer: %w", err)
	}
	return w, nil
}
