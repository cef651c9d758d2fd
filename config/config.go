// Package config contains the fixturegen configuration definitions.
package config

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/zkrollup/fixturegen/common/types"
	"github.com/zkrollup/fixturegen/config/util"
)

const (
	defaultOutputDir   = "./test_data"
	defaultWithdrawals = 3
	// DefaultTimestamp stamps every block unless the wall clock is requested.
	DefaultTimestamp = 1_700_000_000
)

// HardhatAddress is the first account of the hardhat development network.
var HardhatAddress = types.MustHexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

// Config defines the top level configuration of a generation run.
type Config struct {
	OutputDir    string        `mapstructure:"output-dir"`
	Seed         uint64        `mapstructure:"seed"`
	Withdrawals  int           `mapstructure:"withdrawals"`
	Aggregator   types.Address `mapstructure:"aggregator"`
	BlockBuilder types.Address `mapstructure:"block-builder"`
	BuilderNonce uint32        `mapstructure:"builder-nonce"`
	Expiry       uint64        `mapstructure:"expiry"`
	Timestamp    uint64        `mapstructure:"timestamp"`
	WallClock    bool          `mapstructure:"wall-clock"`
	MetricsFile  string        `mapstructure:"metrics-file"`
	MetricsPush  string        `mapstructure:"metrics-push"`
	LOGGING      LoggerConfig  `mapstructure:"logging"`
}

// DefaultConfig reproduces the fixtures consumed by the rollup contract tests.
func DefaultConfig() Config {
	return Config{
		OutputDir:    defaultOutputDir,
		Withdrawals:  defaultWithdrawals,
		Aggregator:   HardhatAddress,
		BlockBuilder: HardhatAddress,
		Timestamp:    DefaultTimestamp,
		LOGGING:      defaultLoggingConfig(),
	}
}

// Validate checks values that the decoder cannot.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.OutputDir == "" {
		errs = append(errs, errors.New("output-dir is empty"))
	}
	if cfg.Withdrawals < 0 {
		errs = append(errs, fmt.Errorf("withdrawals must not be negative: %d", cfg.Withdrawals))
	}
	if _, err := zapcore.ParseLevel(cfg.LOGGING.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch cfg.LOGGING.Encoder {
	case ConsoleLogEncoder, JSONLogEncoder:
	default:
		errs = append(errs, fmt.Errorf("logging.encoder: unknown encoder %q", cfg.LOGGING.Encoder))
	}
	return errors.Join(errs...)
}

// LoadConfig reads the config file into vip. An empty path reads nothing.
func LoadConfig(path string, vip *viper.Viper) error {
	if path == "" {
		return nil
	}
	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %v: %w", path, err)
	}
	return nil
}

// Load layers defaults, the config file at path and the changed flags of fs,
// in that order of precedence from lowest to highest. Flags must be named
// after the mapstructure keys, dots included.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	vip := viper.New()
	if err := LoadConfig(path, vip); err != nil {
		return nil, err
	}
	if fs != nil {
		if err := vip.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := DefaultConfig()
	hook := mapstructure.ComposeDecodeHookFunc(
		util.AddressDecodeFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithIgnoreUntagged(),
		WithErrorUnused(),
	}
	if err := vip.Unmarshal(&cfg, opts...); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func WithIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
