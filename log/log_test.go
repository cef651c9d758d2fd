package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func testEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	return zapcore.NewConsoleEncoder(cfg)
}

func TestLogLevel(t *testing.T) {
	r := require.New(t)

	hooked := 0
	hookFn := func(entry zapcore.Entry) error {
		hooked++
		r.NotEqual(zapcore.ErrorLevel, entry.Level)
		return nil
	}

	var buf bytes.Buffer
	logger := newWithWriter(&buf, "fixturegen", zap.NewAtomicLevelAt(zapcore.InfoLevel), testEncoder(), hookFn)
	sub := logger.WithName("writer")

	logger.Zap().Debug("test001")
	r.Zero(buf.Len())

	logger.Zap().Info("test002")
	r.Equal("INFO\tfixturegen\ttest002\n", buf.String())
	buf.Reset()

	sub.Zap().Info("test003", BlockNumber(7))
	r.Equal("INFO\tfixturegen.writer\ttest003\t{\"block_number\": 7}\n", buf.String())
	buf.Reset()

	r.NoError(logger.SetLevel(zapcore.DebugLevel))
	sub.Zap().Debug("test004")
	r.True(strings.HasPrefix(buf.String(), "DEBUG\tfixturegen.writer\ttest004"))
	r.Equal(3, hooked)
}

func TestWithName_NoHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, "fixturegen", zap.NewAtomicLevelAt(zapcore.InfoLevel), testEncoder())

	logger.WithName("chain").Zap().Info("child")
	require.Equal(t, "INFO\tfixturegen.chain\tchild\n", buf.String())
	buf.Reset()

	logger.WithName("chain").Zap().Debug("filtered")
	require.Zero(t, buf.Len())
}

func TestNopHasNoLevel(t *testing.T) {
	require.Error(t, NewNop().SetLevel(zapcore.DebugLevel))
}

func TestFatalError(t *testing.T) {
	reason := errors.New("boom")
	err := ErrGenerate(reason)
	require.Equal(t, "ERR_GENERATE", err.Code)
	require.Equal(t, "fixture generation failed: boom", err.Error())
	require.ErrorIs(t, err, reason)

	var buf bytes.Buffer
	logger := newWithWriter(&buf, "", zap.NewAtomicLevelAt(zapcore.InfoLevel), Encoder(true))
	logger.Zap().Error("fatal", zap.Object("fatal", err))
	require.Contains(t, buf.String(), `"code":"ERR_GENERATE"`)
}
