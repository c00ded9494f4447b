package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"quotient-hq/abacus/pkg/audit"
	"quotient-hq/abacus/pkg/cli"
	"quotient-hq/abacus/pkg/config"
	"quotient-hq/abacus/pkg/pricing/tiers"
)

var tiersFlags struct {
	costRatio      float64
	taxRate        float64
	referencePrice float64
	markups        []string
	record         bool
}

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Produce a resale tier table",
	Long: `Produce a resale tier table for a model: the break-even sell ratio
plus one quote per configured membership tier.

Tax rate, reference price, and the tier markup ladder default to the
configured values and can be overridden per invocation.

Examples:
  # Tier table with configured defaults
  quotient tiers --cost-ratio 0.6

  # Override the ladder
  quotient tiers --cost-ratio 0.6 --markup vip=1.30 --markup standard=1.40

  # Persist the table to the audit ledger
  quotient tiers --cost-ratio 0.6 --record`,
	RunE: runTiers,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Profit curve across candidate sell ratios",
	Long: `Produce the profit table across candidate sell ratios: rows start at
the smallest 0.05 multiple above break-even and step by 0.05 up to 1.0.

Examples:
  quotient tiers sweep --cost-ratio 0.6
  quotient tiers sweep --cost-ratio 0.6 --tax-rate 0.08 -o csv`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(tiersCmd)
	tiersCmd.AddCommand(sweepCmd)

	for _, cmd := range []*cobra.Command{tiersCmd, sweepCmd} {
		cmd.Flags().Float64Var(&tiersFlags.costRatio, "cost-ratio", 0, "wholesale cost as a fraction of the reference price (required)")
		cmd.Flags().Float64Var(&tiersFlags.taxRate, "tax-rate", -1, "tax fraction of the sell price (default from config)")
		cmd.Flags().Float64Var(&tiersFlags.referencePrice, "reference-price", 0, "public reference price (default from config)")
		_ = cmd.MarkFlagRequired("cost-ratio")
	}
	tiersCmd.Flags().StringArrayVar(&tiersFlags.markups, "markup", nil, "tier markup as name=value (repeatable, default from config)")
	tiersCmd.Flags().BoolVar(&tiersFlags.record, "record", false, "persist the table to the audit ledger")
}

// tierTable renders a Result as rows for text and CSV output.
type tierTable struct {
	*tiers.Result
}

func (t *tierTable) Headers() []string {
	return []string{"tier", "sell_ratio", "sell_price", "tax", "profit", "profit_rate", "note"}
}

func (t *tierTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Quotes))
	for _, q := range t.Quotes {
		note := q.Note
		if q.Warning != tiers.WarnNone {
			if note != "" {
				note += "; "
			}
			note += string(q.Warning)
		}
		rows = append(rows, []string{
			q.Tier,
			tiers.FormatRatio(q.SellRatio),
			tiers.FormatPrice(q.SellPrice),
			tiers.FormatPrice(q.Tax),
			tiers.FormatPrice(q.Profit),
			tiers.FormatPercent(q.ProfitRate),
			note,
		})
	}
	return rows
}

// sweepTable renders sweep rows for text and CSV output.
type sweepTable struct {
	rows []tiers.SweepRow
}

func (t *sweepTable) Headers() []string {
	return []string{"ratio", "sell_price", "tax", "profit", "profit_rate"}
}

func (t *sweepTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, []string{
			tiers.FormatRatio(r.Ratio),
			tiers.FormatPrice(r.SellPrice),
			tiers.FormatPrice(r.Tax),
			tiers.FormatPrice(r.Profit),
			tiers.FormatPercent(r.ProfitRate),
		})
	}
	return rows
}

// tiersInput assembles the calculator input from flags and config
// defaults.
func tiersInput(cfg *config.Config, withMarkups bool) (tiers.Input, error) {
	in := tiers.Input{
		CostRatio:      tiersFlags.costRatio,
		TaxRate:        cfg.Tiers.TaxRate,
		ReferencePrice: cfg.Tiers.ReferencePrice,
	}
	if tiersFlags.taxRate >= 0 {
		in.TaxRate = tiersFlags.taxRate
	}
	if tiersFlags.referencePrice > 0 {
		in.ReferencePrice = tiersFlags.referencePrice
	}

	if withMarkups {
		if len(tiersFlags.markups) > 0 {
			markups := make(map[string]float64, len(tiersFlags.markups))
			for _, spec := range tiersFlags.markups {
				name, value, ok := strings.Cut(spec, "=")
				if !ok {
					return in, cli.NewUsageError("--markup", fmt.Sprintf("%q is not name=value", spec))
				}
				parsed, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return in, cli.NewUsageError("--markup", fmt.Sprintf("%q is not a number", value))
				}
				markups[name] = parsed
			}
			in.Markups = markups
		} else {
			in.Markups = cfg.Tiers.Markups
		}
	}
	return in, nil
}

func runTiers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	in, err := tiersInput(cfg, true)
	if err != nil {
		return err
	}

	result, err := tiers.Calculate(in)
	if err != nil {
		return cli.NewCommandError("tiers", err)
	}
	getMetrics(cfg).RecordTierQuote(result.HighCost)

	if tiersFlags.record {
		if err := recordTierTable(cmd, cfg.Audit, result); err != nil {
			return err
		}
	}

	if outputFormat == "json" {
		return formatter().FormatTo(cmd.OutOrStdout(), result)
	}
	return formatter().FormatTo(cmd.OutOrStdout(), &tierTable{result})
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	in, err := tiersInput(cfg, false)
	if err != nil {
		return err
	}

	rows, err := tiers.Sweep(in)
	if err != nil {
		return cli.NewCommandError("tiers sweep", err)
	}

	if outputFormat == "json" {
		return formatter().FormatTo(cmd.OutOrStdout(), rows)
	}
	return formatter().FormatTo(cmd.OutOrStdout(), &sweepTable{rows: rows})
}

func recordTierTable(cmd *cobra.Command, cfg config.AuditConfig, result *tiers.Result) error {
	storage, err := openAuditStorage(cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	id, err := audit.NewRecorder(storage).RecordTierTable(cmd.Context(), result)
	if err != nil {
		return cli.NewCommandError("tiers", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "recorded: %s\n", id)
	return nil
}
