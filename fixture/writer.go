// Package fixture persists fixture bundles as indented JSON. Every bundle is
// validated against its embedded schema before it reaches the disk, and files
// are replaced atomically so a reader never sees a partial fixture.
package fixture

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/zkrollup/fixturegen/pairing"
	"github.com/zkrollup/fixturegen/witness"
	"github.com/zkrollup/fixturegen/withdrawal"
)

const (
	dirPerm = 0o700

	WithdrawalInfoFile = "withdrawal_info.json"
	PairingFile        = "pairing_test_data.json"
)

// BlockFile is the name of the fixture of block n.
func BlockFile(n uint32) string {
	return fmt.Sprintf("block%d.json", n)
}

// Opt configures a Writer.
type Opt func(*Writer)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(w *Writer) {
		w.logger = logger
	}
}

// Writer writes fixtures into a directory.
type Writer struct {
	logger  *zap.Logger
	fs      afero.Fs
	dir     string
	schemas map[Kind]*jsonschema.Schema
}

// NewWriter creates dir if needed and returns a Writer for it.
func NewWriter(fs afero.Fs, dir string, opts ...Opt) (*Writer, error) {
	w := &Writer{
		logger: zap.NewNop(),
		fs:     fs,
		dir:    dir,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create output dir %v: %w", dir, err)
	}
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	w.schemas = schemas
	return w, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteBlock writes block{N}.json.
func (w *Writer) WriteBlock(block *witness.FullBlock) (string, error) {
	return w.write(BlockFile(block.Block.BlockNumber), KindBlock, block)
}

// WriteWithdrawalInfo writes withdrawal_info.json.
func (w *Writer) WriteWithdrawalInfo(info *withdrawal.Info) (string, error) {
	return w.write(WithdrawalInfoFile, KindWithdrawalInfo, info)
}

// WritePairing writes pairing_test_data.json.
func (w *Writer) WritePairing(data *pairing.TestData) (string, error) {
	return w.write(PairingFile, KindPairing, data)
}

func (w *Writer) write(name string, kind Kind, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := validate(w.schemas[kind], kind, data); err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, name)
	if err := w.replace(path, data); err != nil {
		return "", err
	}
	filesWritten.WithLabelValues(string(kind)).Inc()
	bytesWritten.WithLabelValues(string(kind)).Add(float64(len(data)))
	w.logger.Info("fixture written",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)
	return path, nil
}

func (w *Writer) replace(path string, data []byte) (err error) {
	if _, ok := w.fs.(*afero.OsFs); ok {
		if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("write %v: %w", path, err)
		}
		return nil
	}
	tmp, err := afero.TempFile(w.fs, filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return fmt.Errorf("%w: create tmp file", err)
	}
	defer func() {
		_ = tmp.Close()
		if err != nil {
			_ = w.fs.Remove(tmp.Name())
		}
	}()
	fw := bufio.NewWriter(tmp)
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("write tmp file: %w", err)
	}
	if err := fw.Flush(); err != nil {
		return fmt.Errorf("flush tmp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: sync tmp file", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close tmp file", err)
	}
	if err := w.fs.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename tmp file %v to %v", err, tmp.Name(), path)
	}
	return nil
}
