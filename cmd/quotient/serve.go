package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"quotient-hq/abacus/pkg/audit"
	"quotient-hq/abacus/pkg/cli"
	"quotient-hq/abacus/pkg/settings"
	"quotient-hq/abacus/pkg/telemetry/metrics"
)

var serveFlags struct {
	listenAddress   string
	refreshInterval time.Duration
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the metrics endpoint and run background maintenance",
	Long: `Serve the Prometheus metrics endpoint and run the background loops:
periodic settings refresh and scheduled audit retention pruning.

Examples:
  # Serve with config defaults
  quotient serve

  # Override the metrics listen address
  quotient serve --listen 0.0.0.0:9180`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override metrics listen address")
	serveCmd.Flags().DurationVar(&serveFlags.refreshInterval, "refresh-interval", 30*time.Second, "settings refresh interval")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}
	if serveFlags.listenAddress != "" {
		cfg.Telemetry.Metrics.ListenAddress = serveFlags.listenAddress
	}

	logger := slog.Default().With("component", "serve")
	ctx := cli.SetupSignalHandler()

	src, closeSource, err := newSettingsSource(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	m := getMetrics(cfg)

	// Periodic settings refresh for refreshable sources. The file
	// source also reloads on change via its own watcher.
	if refreshable, ok := src.(settings.RefreshableSource); ok && serveFlags.refreshInterval > 0 {
		go refreshLoop(ctx, refreshable, serveFlags.refreshInterval, m, logger)
	}

	// Scheduled audit retention.
	if cfg.Audit.Enabled && cfg.Audit.PruneSchedule != "" {
		storage, err := openAuditStorage(cfg.Audit)
		if err != nil {
			return err
		}
		defer storage.Close()

		pruner := audit.NewPruner(storage, &audit.RetentionConfig{
			RetentionDays: cfg.Audit.RetentionDays,
			MaxRecords:    cfg.Audit.MaxRecords,
			PruneSchedule: cfg.Audit.PruneSchedule,
		})
		if err := pruner.Start(ctx); err != nil {
			return fmt.Errorf("failed to start retention scheduler: %w", err)
		}
		defer pruner.Stop()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	server := &http.Server{
		Addr:         cfg.Telemetry.Metrics.ListenAddress,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics endpoint listening", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("metrics server failed: %w", err)
		}
		return nil
	}
}

// refreshLoop reloads the settings source on an interval so exchange
// changes in the backing store show up without a restart.
func refreshLoop(ctx context.Context, src settings.RefreshableSource, interval time.Duration, m *metrics.Metrics, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := src.Refresh(ctx); err != nil {
				logger.Warn("settings refresh failed",
					"source", src.Name(),
					"error", err,
				)
				continue
			}
			m.RecordSettingsReload(src.Name())
			logger.Debug("settings refreshed", "source", src.Name())
		}
	}
}
