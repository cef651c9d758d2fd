// Package log provides console and JSON logging for fixturegen built on zap.
package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// where logs go by default.
var logWriter io.Writer = os.Stderr

// Log wraps a zap logger together with the level it was created with.
type Log struct {
	logger *zap.Logger
	lvl    *zap.AtomicLevel
}

// NewNop creates silent logger.
func NewNop() Log {
	return NewFromLog(zap.NewNop())
}

// NewFromLog creates a Log from an existing zap-compatible log.
func NewFromLog(l *zap.Logger) Log {
	return Log{logger: l}
}

// Encoder returns the console or JSON encoder.
func Encoder(json bool) zapcore.Encoder {
	if json {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// NewWithLevel creates a logger with a fixed level and with a set of (optional) hooks.
func NewWithLevel(module string,
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	hooks ...func(zapcore.Entry) error,
) Log {
	return newWithWriter(logWriter, module, level, encoder, hooks...)
}

func newWithWriter(w io.Writer,
	module string,
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	hooks ...func(zapcore.Entry) error,
) Log {
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	lgr := zap.New(zapcore.RegisterHooks(core, hooks...)).Named(module)
	return Log{logger: lgr, lvl: &level}
}

// Zap returns the underlying zap logger.
func (l Log) Zap() *zap.Logger {
	return l.logger
}

// WithName returns a named child logger that shares the parent level.
func (l Log) WithName(prefix string) Log {
	lgr := l.logger.Named(prefix)
	if l.lvl != nil {
		lgr = lgr.WithOptions(addDynamicLevel(l.lvl))
	}
	return Log{logger: lgr, lvl: l.lvl}
}

// SetLevel changes the level of this logger and every child created by WithName.
func (l Log) SetLevel(level zapcore.Level) error {
	if l.lvl == nil {
		return fmt.Errorf("logger has no adjustable level")
	}
	l.lvl.SetLevel(level)
	return nil
}

func addDynamicLevel(level *zap.AtomicLevel) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &coreWithLevel{
			Core: core,
			lvl:  level,
		}
	})
}

type coreWithLevel struct {
	zapcore.Core
	lvl *zap.AtomicLevel
}

func (c *coreWithLevel) Enabled(level zapcore.Level) bool {
	return c.lvl.Enabled(level)
}

func (c *coreWithLevel) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.lvl.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}
