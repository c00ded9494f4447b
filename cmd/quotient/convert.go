package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"quotient-hq/abacus/pkg/cli"
	"quotient-hq/abacus/pkg/quota"
)

var convertFlags struct {
	digits  int
	reverse bool
	plain   bool
}

var convertCmd = &cobra.Command{
	Use:   "convert <value>",
	Short: "Convert between raw quota and display form",
	Long: `Convert a raw quota amount to its display form using the configured
exchange settings. When display-in-currency is enabled the result is a
currency string; otherwise the quota is shown as a compact number.

Examples:
  # Render a quota amount
  quotient convert 1234567

  # More currency decimals
  quotient convert 1234567 --digits 4

  # Currency back to raw quota
  quotient convert 2.47 --reverse

  # Compact number regardless of display mode
  quotient convert 1234567 --plain`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().IntVar(&convertFlags.digits, "digits", quota.DefaultCurrencyDigits, "currency decimal digits")
	convertCmd.Flags().BoolVar(&convertFlags.reverse, "reverse", false, "convert currency to raw quota")
	convertCmd.Flags().BoolVar(&convertFlags.plain, "plain", false, "compact number output, ignore display mode")
}

type convertResult struct {
	Input   float64 `json:"input"`
	Display string  `json:"display"`
}

func (r *convertResult) String() string { return r.Display }

func runConvert(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return cli.NewUsageError("value", fmt.Sprintf("%q is not a number", args[0]))
	}

	if convertFlags.plain {
		result := &convertResult{Input: value, Display: quota.DisplayNumber(value)}
		return formatter().FormatTo(cmd.OutOrStdout(), result)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	src, closeSource, err := newSettingsSource(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	converter := quota.NewConverter(src)
	ctx := cmd.Context()

	if convertFlags.reverse {
		raw, err := converter.FromCurrency(ctx, value)
		if err != nil {
			if errors.Is(err, quota.ErrUnavailable) {
				getMetrics(cfg).RecordConversionUnavailable()
			}
			return cli.NewCommandError("convert", err)
		}
		result := &convertResult{
			Input:   value,
			Display: strconv.FormatFloat(raw, 'f', -1, 64),
		}
		return formatter().FormatTo(cmd.OutOrStdout(), result)
	}

	display, err := converter.Currency(ctx, value, convertFlags.digits)
	if err != nil {
		if errors.Is(err, quota.ErrUnavailable) {
			getMetrics(cfg).RecordConversionUnavailable()
		}
		return cli.NewCommandError("convert", err)
	}
	result := &convertResult{Input: value, Display: display}
	return formatter().FormatTo(cmd.OutOrStdout(), result)
}
