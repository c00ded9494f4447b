package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"quotient-hq/abacus/pkg/audit"
	"quotient-hq/abacus/pkg/cli"
	"quotient-hq/abacus/pkg/config"
	"quotient-hq/abacus/pkg/pricing"
)

var costFlags struct {
	file   string
	group  string
	record bool
}

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Evaluate a cost breakdown from a usage file",
	Long: `Evaluate the cost of one model call described by a YAML usage file.

The file carries the variant, usage counters, and pricing ratios:

  variant: claude
  usage:
    input_tokens: 1000000
    completion_tokens: 200000
    cache_tokens: 500000
  ratios:
    model: 1.5
    completion: 5.0
    cache: 0.1
  group_ratio: 1.0

Examples:
  # Evaluate and print the breakdown
  quotient cost --file usage.yaml

  # Resolve the group ratio from the configured group table
  quotient cost --file usage.yaml --group vip

  # Persist the result to the audit ledger
  quotient cost --file usage.yaml --record`,
	RunE: runCost,
}

func init() {
	rootCmd.AddCommand(costCmd)

	costCmd.Flags().StringVarP(&costFlags.file, "file", "f", "", "usage file (required)")
	costCmd.Flags().StringVarP(&costFlags.group, "group", "g", "", "billing group name from the configured group table")
	costCmd.Flags().BoolVar(&costFlags.record, "record", false, "persist the breakdown to the audit ledger")
	_ = costCmd.MarkFlagRequired("file")
}

// breakdownTable renders a Breakdown as rows for text and CSV output.
type breakdownTable struct {
	*pricing.Breakdown
}

func (t *breakdownTable) Headers() []string {
	return []string{"component", "quantity", "unit_price", "subtotal"}
}

func (t *breakdownTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Items)+1)
	for _, item := range t.Items {
		rows = append(rows, []string{
			item.Component,
			strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			strconv.FormatFloat(item.UnitPrice, 'f', -1, 64),
			strconv.FormatFloat(item.Subtotal, 'f', -1, 64),
		})
	}
	rows = append(rows, []string{"total", "", "", strconv.FormatFloat(t.Total, 'f', -1, 64)})
	return rows
}

func runCost(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	data, err := os.ReadFile(costFlags.file)
	if err != nil {
		return fmt.Errorf("failed to read usage file: %w", err)
	}

	var req pricing.Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse usage file: %w", err)
	}

	if costFlags.group != "" {
		ratio, ok := cfg.Pricing.GroupRatios[costFlags.group]
		if !ok {
			ratio = cfg.Pricing.DefaultGroupRatio
		}
		req.GroupRatio = ratio
	}
	if req.GroupRatio == 0 {
		req.GroupRatio = cfg.Pricing.DefaultGroupRatio
	}

	breakdown, err := pricing.Evaluate(req)
	if err != nil {
		return cli.NewCommandError("cost", err)
	}
	getMetrics(cfg).RecordEvaluation(string(breakdown.Variant), breakdown.Total)

	if costFlags.record {
		if err := recordBreakdown(cmd, cfg.Audit, breakdown); err != nil {
			return err
		}
	}

	if outputFormat == "json" {
		return formatter().FormatTo(cmd.OutOrStdout(), breakdown)
	}
	return formatter().FormatTo(cmd.OutOrStdout(), &breakdownTable{breakdown})
}

func recordBreakdown(cmd *cobra.Command, cfg config.AuditConfig, breakdown *pricing.Breakdown) error {
	storage, err := openAuditStorage(cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	id, err := audit.NewRecorder(storage).RecordBreakdown(cmd.Context(), breakdown)
	if err != nil {
		return cli.NewCommandError("cost", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "recorded: %s\n", id)
	return nil
}
