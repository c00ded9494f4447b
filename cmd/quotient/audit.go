package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"quotient-hq/abacus/pkg/audit"
	"quotient-hq/abacus/pkg/cli"
	"quotient-hq/abacus/pkg/config"
)

var auditListFlags struct {
	kind  string
	limit int
	since time.Duration
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and maintain the audit ledger",
	Long:  `Inspect recorded pricing computations and run retention maintenance.`,
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded computations",
	Long: `List audit records, newest first.

Examples:
  # All records
  quotient audit list

  # Only cost evaluations from the last day
  quotient audit list --kind cost --since 24h

  # Latest five, as JSON
  quotient audit list --limit 5 -o json`,
	RunE: runAuditList,
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the retention policy once",
	Long: `Delete audit records outside the configured retention policy:
records older than retention_days, then the oldest records beyond
max_records.`,
	RunE: runAuditPrune,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditPruneCmd)

	auditListCmd.Flags().StringVar(&auditListFlags.kind, "kind", "", "filter by record kind (cost, tier)")
	auditListCmd.Flags().IntVar(&auditListFlags.limit, "limit", 20, "maximum records to show (0 = all)")
	auditListCmd.Flags().DurationVar(&auditListFlags.since, "since", 0, "only records newer than this age (e.g. 24h)")
}

// openAuditStorage opens the configured audit database.
func openAuditStorage(cfg config.AuditConfig) (audit.Storage, error) {
	sqliteCfg := audit.DefaultSQLiteConfig(cfg.DBPath)
	if cfg.BusyTimeout > 0 {
		sqliteCfg.BusyTimeout = cfg.BusyTimeout
	}
	storage, err := audit.NewSQLiteStorage(sqliteCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit storage: %w", err)
	}
	return storage, nil
}

// auditTable renders records as rows for text and CSV output.
type auditTable struct {
	records []*audit.Record
}

func (t *auditTable) Headers() []string {
	return []string{"id", "created_at", "kind", "total", "summary"}
}

func (t *auditTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.records))
	for _, rec := range t.records {
		rows = append(rows, []string{
			rec.ID,
			rec.CreatedAt.Format(time.RFC3339),
			rec.Kind,
			strconv.FormatFloat(rec.Total, 'f', -1, 64),
			rec.Summary,
		})
	}
	return rows
}

func runAuditList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	storage, err := openAuditStorage(cfg.Audit)
	if err != nil {
		return err
	}
	defer storage.Close()

	opts := audit.ListOptions{
		Kind:  auditListFlags.kind,
		Limit: auditListFlags.limit,
	}
	if auditListFlags.since > 0 {
		opts.Since = time.Now().Add(-auditListFlags.since)
	}

	records, err := storage.List(cmd.Context(), opts)
	if err != nil {
		return cli.NewCommandError("audit list", err)
	}

	if outputFormat == "json" {
		return formatter().FormatTo(cmd.OutOrStdout(), records)
	}
	return formatter().FormatTo(cmd.OutOrStdout(), &auditTable{records: records})
}

func runAuditPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	storage, err := openAuditStorage(cfg.Audit)
	if err != nil {
		return err
	}
	defer storage.Close()

	pruner := audit.NewPruner(storage, &audit.RetentionConfig{
		RetentionDays: cfg.Audit.RetentionDays,
		MaxRecords:    cfg.Audit.MaxRecords,
	})

	deleted, err := pruner.Prune(cmd.Context())
	if err != nil {
		return cli.NewCommandError("audit prune", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d records\n", deleted)
	return nil
}
