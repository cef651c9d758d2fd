package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zkrollup/fixturegen/cmd"
	"github.com/zkrollup/fixturegen/config"
	"github.com/zkrollup/fixturegen/generator"
	"github.com/zkrollup/fixturegen/log"
	"github.com/zkrollup/fixturegen/metrics"
)

var (
	configPath  string
	configFlags = cmd.ConfigFlags()
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file, toml yaml or json")
	rootCmd.PersistentFlags().AddFlagSet(configFlags)
	rootCmd.AddCommand(pairingCmd)
}

var rootCmd = &cobra.Command{
	Use:           "fixturegen",
	Short:         "generate rollup block validity fixtures",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(c *cobra.Command, _ []string) error {
		return run(c.Context(), func(ctx context.Context, g *generator.Generator) error {
			if _, err := g.Run(ctx); err != nil {
				return err
			}
			_, err := g.RunPairing(ctx)
			return err
		})
	},
}

var pairingCmd = &cobra.Command{
	Use:   "pairing",
	Short: "generate only the pairing fixture",
	RunE: func(c *cobra.Command, _ []string) error {
		return run(c.Context(), func(ctx context.Context, g *generator.Generator) error {
			_, err := g.RunPairing(ctx)
			return err
		})
	},
}

func run(ctx context.Context, fn func(context.Context, *generator.Generator) error) error {
	cfg, err := config.Load(configPath, configFlags)
	if err != nil {
		return log.ErrMalformedConfig(err)
	}
	lvl, err := zap.ParseAtomicLevel(cfg.LOGGING.Level)
	if err != nil {
		return log.ErrBadFlags(err)
	}
	logger := log.NewWithLevel("fixturegen", lvl, log.Encoder(cfg.LOGGING.Encoder == config.JSONLogEncoder))
	g := generator.New(*cfg, generator.WithLogger(logger.WithName("generator").Zap()))

	if err := fn(ctx, g); err != nil {
		return log.ErrGenerate(err)
	}
	if err := exportMetrics(ctx, cfg); err != nil {
		return log.ErrMetrics(err)
	}
	return nil
}

func exportMetrics(ctx context.Context, cfg *config.Config) error {
	if cfg.MetricsFile != "" {
		if err := metrics.WriteToTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}
	if cfg.MetricsPush != "" {
		grouping := map[string]string{"seed": strconv.FormatUint(cfg.Seed, 10)}
		if err := metrics.Push(ctx, cfg.MetricsPush, grouping); err != nil {
			return err
		}
	}
	return nil
}

func reportError(logger *zap.Logger, err error) {
	var fatal *log.FatalError
	if errors.As(err, &fatal) {
		logger.Error("fixturegen failed", zap.Object("fatal", fatal))
		return
	}
	logger.Error("fixturegen failed", zap.Error(err))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		lvl := zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		reportError(log.NewWithLevel("fixturegen", lvl, log.Encoder(false)).Zap(), err)
		cancel()
		os.Exit(1)
	}
}
