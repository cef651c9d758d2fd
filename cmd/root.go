package cmd

import (
	"github.com/spf13/pflag"

	"github.com/zkrollup/fixturegen/config"
)

// ConfigFlags returns the flags that override config values. Every flag is
// named after its config key so it can be bound into viper as is.
func ConfigFlags() *pflag.FlagSet {
	def := config.DefaultConfig()
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)

	fs.StringP("output-dir", "o", def.OutputDir, "directory the fixtures are written to")
	fs.Uint64("seed", def.Seed, "seed of the random stream")
	fs.Int("withdrawals", def.Withdrawals, "number of withdrawals sampled from the last block")
	fs.String("aggregator", def.Aggregator.Hex(), "withdrawal aggregator address")

	/** ======================== Block Flags ========================== **/
	fs.String("block-builder", def.BlockBuilder.Hex(), "block builder address")
	fs.Uint32("builder-nonce", def.BuilderNonce, "block builder nonce")
	fs.Uint64("expiry", def.Expiry, "block sign payload expiry, 0 for none")
	fs.Uint64("timestamp", def.Timestamp, "unix timestamp of every block")
	fs.Bool("wall-clock", def.WallClock, "stamp blocks with the current time, output is no longer reproducible")

	/** ======================== Metrics Flags ========================== **/
	fs.String("metrics-file", def.MetricsFile, "write metrics in the prometheus text format to this file")
	fs.String("metrics-push", def.MetricsPush, "push metrics to this pushgateway url")

	/** ======================== Logging Flags ========================== **/
	fs.String("logging.level", def.LOGGING.Level, "log level")
	fs.String("logging.encoder", def.LOGGING.Encoder, "log encoder, console or json")
	return fs
}
