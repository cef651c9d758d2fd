package fixture

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/zkrollup/fixturegen/log/logtest"
	"github.com/zkrollup/fixturegen/pairing"
	"github.com/zkrollup/fixturegen/rng"
	"github.com/zkrollup/fixturegen/witness"
	"github.com/zkrollup/fixturegen/withdrawal"
)

func testBlocks(t *testing.T) []*witness.FullBlock {
	t.Helper()
	r := rng.New(0)
	req := witness.RandomTxRequest(r, true)
	chain := witness.NewChain()
	var out []*witness.FullBlock
	for _, step := range []struct {
		reg  bool
		reqs []witness.TxRequest
	}{
		{true, []witness.TxRequest{req}},
		{false, []witness.TxRequest{req}},
		{false, nil},
	} {
		vw, err := chain.Advance(step.reg, step.reqs)
		require.NoError(t, err)
		out = append(out, witness.ToFullBlock(&vw.BlockWitness))
	}
	return out
}

func TestWriter_MemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	w, err := NewWriter(fs, "/out/fixtures", WithLogger(logtest.New(t)))
	require.NoError(t, err)
	require.Equal(t, "/out/fixtures", w.Dir())

	blocks := testBlocks(t)
	for i, b := range blocks {
		path, err := w.WriteBlock(b)
		require.NoError(t, err)
		require.Equal(t, filepath.Join("/out/fixtures", BlockFile(uint32(i))), path)

		data, err := afero.ReadFile(fs, path)
		require.NoError(t, err)
		want, err := json.MarshalIndent(b, "", "  ")
		require.NoError(t, err)
		require.Equal(t, want, data)
	}

	info := withdrawal.Build(blocks[2], rng.New(0), 3, withdrawal.DefaultAggregator)
	path, err := w.WriteWithdrawalInfo(info)
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.NoError(t, ValidateSchema(KindWithdrawalInfo, data))

	path, err = w.WritePairing(pairing.Generate(rng.New(0)))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/out/fixtures", PairingFile), path)

	entries, err := afero.ReadDir(fs, "/out/fixtures")
	require.NoError(t, err)
	require.Len(t, entries, 5, "no temp files left behind")
}

func TestWriter_OsFs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := NewWriter(afero.NewOsFs(), dir)
	require.NoError(t, err)

	path, err := w.WritePairing(pairing.Generate(rng.New(0)))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, ValidateSchema(KindPairing, data))

	path2, err := w.WritePairing(pairing.Generate(rng.New(0)))
	require.NoError(t, err)
	data2, err := os.ReadFile(path2)
	require.NoError(t, err)
	require.Equal(t, data, data2)
}

func TestWriter_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	_, err := NewWriter(fs, "/out")
	require.Error(t, err)
}

type failingRenameFs struct {
	afero.Fs
}

func (failingRenameFs) Rename(string, string) error {
	return errors.New("rename refused")
}

func TestWriter_FailedWriteRemovesTmpFile(t *testing.T) {
	fs := failingRenameFs{Fs: afero.NewMemMapFs()}
	w, err := NewWriter(fs, "/out")
	require.NoError(t, err)

	_, err = w.WritePairing(pairing.Generate(rng.New(0)))
	require.ErrorContains(t, err, "rename refused")

	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestValidateSchema(t *testing.T) {
	blocks := testBlocks(t)
	data, err := json.Marshal(blocks[0])
	require.NoError(t, err)
	require.NoError(t, ValidateSchema(KindBlock, data))

	var v map[string]any
	require.NoError(t, json.Unmarshal(data, &v))
	delete(v, "blockHash")
	broken, err := json.Marshal(v)
	require.NoError(t, err)
	require.Error(t, ValidateSchema(KindBlock, broken))

	require.Error(t, ValidateSchema(KindPairing, []byte(`{"aggPubkey": ["0x00"]}`)))
	require.Error(t, ValidateSchema(KindBlock, []byte(`not json`)))
	require.Error(t, ValidateSchema(Kind("unknown.json"), []byte(`{}`)))
}
