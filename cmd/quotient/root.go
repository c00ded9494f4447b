package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"quotient-hq/abacus/pkg/cli"
	"quotient-hq/abacus/pkg/config"
	"quotient-hq/abacus/pkg/settings"
	"quotient-hq/abacus/pkg/telemetry/logging"
	"quotient-hq/abacus/pkg/telemetry/metrics"
)

var (
	// Global flags
	cfgFile      string
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "quotient",
	Short: "Abacus - quota and tiered-price calculation console",
	Long: `Abacus is a quota and tiered-price calculation library for LLM API
gateways, with this console as its command-line surface.

It provides:
  - Quota/currency conversion with configurable exchange settings
  - Cost breakdown evaluation across model pricing variants
  - Resale tier tables with break-even and profit analysis
  - An audit ledger of recorded computations

For more information, visit: https://github.com/quotient-hq/abacus`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, json, csv)")
}

// loadConfig loads the configuration file named by --config. A missing
// file at the default path falls back to built-in defaults; an
// explicitly named file must exist.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		if !rootCmd.PersistentFlags().Changed("config") {
			cfg := config.NewDefaultConfig()
			applyVerbosity(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyVerbosity(cfg)
	return cfg, nil
}

func applyVerbosity(cfg *config.Config) {
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
}

// setupLogging installs the configured slog handler as the default
// logger.
func setupLogging(cfg *config.Config) error {
	logger, err := logging.New(cfg.Telemetry.Logging, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	slog.SetDefault(logger)
	return nil
}

var appMetrics *metrics.Metrics

// getMetrics returns the process-wide metrics instance, creating it on
// first use. Commands record into it and the serve command exposes it.
func getMetrics(cfg *config.Config) *metrics.Metrics {
	if appMetrics == nil {
		appMetrics = metrics.New(&cfg.Telemetry.Metrics, nil)
	}
	return appMetrics
}

// newSettingsSource builds the configured exchange settings source.
// The returned closer releases watchers or database handles; it is a
// no-op for sources without resources.
func newSettingsSource(cfg *config.Config) (settings.Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Exchange.Source {
	case "", "static":
		src := settings.NewExchangeSource(cfg.Exchange.QuotaPerUnit, cfg.Exchange.DisplayInCurrency)
		return src, noop, nil
	case "env":
		return settings.NewEnvSource(), noop, nil
	case "file":
		src, err := settings.NewFileSource(cfg.Exchange.Path, cfg.Exchange.Watch)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open settings file: %w", err)
		}
		return src, src.Close, nil
	case "sqlite":
		src, err := settings.NewSQLiteSource(cfg.Exchange.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open settings database: %w", err)
		}
		return src, src.Close, nil
	default:
		return nil, nil, cli.NewUsageError("exchange.source",
			fmt.Sprintf("unknown source %q", cfg.Exchange.Source))
	}
}

// formatter returns the output formatter selected by --output.
func formatter() cli.Formatter {
	return cli.NewFormatter(cli.OutputFormat(outputFormat))
}
