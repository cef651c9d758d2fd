package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zkrollup/fixturegen/log"
)

func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "fixtures")
	metricsFile := filepath.Join(dir, "fixturegen.prom")
	cfgFile := filepath.Join(dir, "fixturegen.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("withdrawals = 2\n"), 0o600))

	rootCmd.SetArgs([]string{"--config", cfgFile, "-o", out, "--metrics-file", metricsFile})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	for _, name := range []string{
		"block0.json", "block1.json", "block2.json", "withdrawal_info.json", "pairing_test_data.json",
	} {
		require.FileExists(t, filepath.Join(out, name))
	}
	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "fixturegen_generator_withdrawals 2")

	pairingOut := filepath.Join(dir, "pairing")
	rootCmd.SetArgs([]string{"pairing", "-o", pairingOut, "--metrics-file", ""})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	require.FileExists(t, filepath.Join(pairingOut, "pairing_test_data.json"))
	require.NoFileExists(t, filepath.Join(pairingOut, "block0.json"))

	rootCmd.SetArgs([]string{"--config", filepath.Join(dir, "missing.toml")})
	err = rootCmd.ExecuteContext(context.Background())
	var fatal *log.FatalError
	require.True(t, errors.As(err, &fatal))
	require.Equal(t, "ERR_MALFORMED_CONFIG", fatal.Code)
}

func TestReportError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)

	reportError(logger, log.ErrGenerate(errors.New("boom")))
	reportError(logger, errors.New("plain"))

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, map[string]any{
		"code":  "ERR_GENERATE",
		"error": "fixture generation failed: boom",
	}, entries[0].ContextMap()["fatal"])
	require.Equal(t, "plain", entries[1].ContextMap()["error"])
}
