package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BlockNumber returns a field with key "block_number".
func BlockNumber(n uint32) zap.Field {
	return zap.Uint32("block_number", n)
}

// Hex returns a field that renders v through its String method, which is
// 0x-prefixed hex for every fixed-size value in this module.
func Hex(key string, v fmt.Stringer) zap.Field {
	return zap.Stringer(key, v)
}

// FatalError is an error that terminates the command with a stable code.
type FatalError struct {
	Code   string
	Text   string
	Reason error
}

var (
	ErrMalformedConfig = newFatalError("ERR_MALFORMED_CONFIG", "config file is malformed")
	ErrBadFlags        = newFatalError("ERR_BAD_FLAGS", "bad CLI flags")
	ErrGenerate        = newFatalError("ERR_GENERATE", "fixture generation failed")
	ErrMetrics         = newFatalError("ERR_METRICS", "could not export metrics")
)

func newFatalError(code, text string) func(reason error) *FatalError {
	return func(reason error) *FatalError {
		return &FatalError{
			Code:   code,
			Text:   text,
			Reason: reason,
		}
	}
}

func (fe *FatalError) Error() string {
	if fe.Reason != nil {
		return fmt.Sprintf("%v: %v", fe.Text, fe.Reason)
	}
	return fe.Text
}

func (fe *FatalError) Unwrap() error {
	return fe.Reason
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (fe *FatalError) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("code", fe.Code)
	encoder.AddString("error", fe.Error())
	return nil
}
