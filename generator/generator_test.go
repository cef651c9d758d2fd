package generator

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/config"
	"github.com/zkrollup/fixturegen/fixture"
	"github.com/zkrollup/fixturegen/log/logtest"
	"github.com/zkrollup/fixturegen/witness"
	"github.com/zkrollup/fixturegen/withdrawal"
)

const outDir = "/fixtures"

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.OutputDir = outDir
	return cfg
}

func readAll(t *testing.T, fs afero.Fs) map[string][]byte {
	t.Helper()
	entries, err := afero.ReadDir(fs, outDir)
	require.NoError(t, err)
	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		data, err := afero.ReadFile(fs, filepath.Join(outDir, e.Name()))
		require.NoError(t, err)
		out[e.Name()] = data
	}
	return out
}

func TestRun_EndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := New(testConfig(), WithFs(fs), WithLogger(logtest.New(t)))

	res, err := g.Run(context.Background())
	require.NoError(t, err)
	_, err = g.RunPairing(context.Background())
	require.NoError(t, err)

	files := readAll(t, fs)
	require.Len(t, files, 5)
	for _, name := range []string{
		"block0.json", "block1.json", "block2.json",
		fixture.WithdrawalInfoFile, fixture.PairingFile,
	} {
		require.Contains(t, files, name)
	}

	var blocks [3]witness.FullBlock
	for i := range blocks {
		require.NoError(t, json.Unmarshal(files[fixture.BlockFile(uint32(i))], &blocks[i]))
		require.EqualValues(t, i, blocks[i].Block.BlockNumber)
		require.Equal(t, blocks[i].Block.Hash(), blocks[i].BlockHash)
		if i > 0 {
			require.Equal(t, blocks[i-1].BlockHash, blocks[i].Block.PrevBlockHash)
		}
	}
	require.True(t, blocks[0].IsRegistrationBlock())
	require.NotNil(t, blocks[0].Pubkeys)
	require.Len(t, *blocks[0].Pubkeys, 1)
	require.Nil(t, blocks[0].AccountIDs)
	require.Nil(t, blocks[1].Pubkeys)
	require.NotNil(t, blocks[1].AccountIDs)
	require.Nil(t, blocks[2].Pubkeys)
	require.Empty(t, *blocks[2].AccountIDs)
	require.Equal(t, types.Bytes16{}, blocks[2].Signature.SenderFlag)

	var info withdrawal.Info
	require.NoError(t, json.Unmarshal(files[fixture.WithdrawalInfoFile], &info))
	require.Len(t, info.Withdrawals, 3)
	require.NotEqual(t, types.Bytes32{}, info.WithdrawalProofPublicInputs.LastWithdrawalHash)
	require.Equal(t, config.HardhatAddress, info.WithdrawalProofPublicInputs.WithdrawalAggregator)
	require.Equal(t, info.WithdrawalProofPublicInputs.Hash(), info.PisHash)
	require.Equal(t, withdrawal.HashChain(info.Withdrawals), info.WithdrawalProofPublicInputs.LastWithdrawalHash)
	for _, w := range info.Withdrawals {
		require.Equal(t, blocks[2].BlockHash, w.BlockHash)
		require.EqualValues(t, 2, w.BlockNumber)
	}
	require.Equal(t, res.Withdrawals, &info)

	var pairing struct {
		AggPubkey    [2]types.Bytes32 `json:"aggPubkey"`
		AggSignature [4]types.Bytes32 `json:"aggSignature"`
		MessagePoint [4]types.Bytes32 `json:"messagePoint"`
	}
	require.NoError(t, json.Unmarshal(files[fixture.PairingFile], &pairing))
	require.NotEqual(t, pairing.AggSignature, pairing.MessagePoint)
	require.NotEqual(t, [2]types.Bytes32{}, pairing.AggPubkey)
}

func TestRun_Reproducible(t *testing.T) {
	run := func() map[string][]byte {
		fs := afero.NewMemMapFs()
		g := New(testConfig(), WithFs(fs))
		_, err := g.Run(context.Background())
		require.NoError(t, err)
		_, err = g.RunPairing(context.Background())
		require.NoError(t, err)
		return readAll(t, fs)
	}
	require.Equal(t, run(), run())
}

func TestRun_SeedChangesOutput(t *testing.T) {
	run := func(seed uint64) []byte {
		fs := afero.NewMemMapFs()
		cfg := testConfig()
		cfg.Seed = seed
		_, err := New(cfg, WithFs(fs)).Run(context.Background())
		require.NoError(t, err)
		return readAll(t, fs)["block0.json"]
	}
	require.NotEqual(t, run(0), run(1))
}

func TestRun_ProducerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	producer := NewMockblockProducer(ctrl)
	fs := afero.NewMemMapFs()

	chain := witness.NewChain()
	first := producer.EXPECT().Advance(true, gomock.Len(1)).DoAndReturn(chain.Advance)
	failure := errors.New("tree unavailable")
	producer.EXPECT().Advance(false, gomock.Len(1)).Return(nil, failure).After(first.Call)

	_, err := New(testConfig(), WithFs(fs), WithBlockProducer(producer)).Run(context.Background())
	require.ErrorIs(t, err, failure)

	exists, err := afero.DirExists(fs, outDir)
	require.NoError(t, err)
	require.False(t, exists, "nothing is written when a block fails")
}

func TestRun_ReusesSenderAcrossBlocks(t *testing.T) {
	ctrl := gomock.NewController(t)
	producer := NewMockblockProducer(ctrl)
	chain := witness.NewChain()

	var seen []witness.TxRequest
	producer.EXPECT().Advance(gomock.Any(), gomock.Any()).DoAndReturn(
		func(isReg bool, reqs []witness.TxRequest) (*witness.ValidityWitness, error) {
			seen = append(seen, reqs...)
			return chain.Advance(isReg, reqs)
		},
	).Times(3)

	_, err := New(testConfig(), WithFs(afero.NewMemMapFs()), WithBlockProducer(producer)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, seen, 2)
	require.Equal(t, seen[0].Tx, seen[1].Tx)
	require.Equal(t, seen[0].SenderKey.Pubkey, seen[1].SenderKey.Pubkey)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fs := afero.NewMemMapFs()
	g := New(testConfig(), WithFs(fs))

	_, err := g.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	_, err = g.RunPairing(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_ZeroWithdrawals(t *testing.T) {
	cfg := testConfig()
	cfg.Withdrawals = 0
	res, err := New(cfg, WithFs(afero.NewMemMapFs())).Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, res.Withdrawals.Withdrawals)
	require.Equal(t, types.Bytes32{}, res.Withdrawals.WithdrawalProofPublicInputs.LastWithdrawalHash)
}
