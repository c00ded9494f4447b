package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

var validExchangeSources = map[string]bool{
	"static": true,
	"env":    true,
	"file":   true,
	"sqlite": true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"text":    true,
	"console": true,
}

// Validate checks the configuration for consistency. It is called by
// LoadConfig after defaults and overrides are applied.
func Validate(cfg *Config) error {
	if !validExchangeSources[cfg.Exchange.Source] {
		return fmt.Errorf("exchange.source: unknown source %q", cfg.Exchange.Source)
	}
	if (cfg.Exchange.Source == "file" || cfg.Exchange.Source == "sqlite") && cfg.Exchange.Path == "" {
		return fmt.Errorf("exchange.path: required for source %q", cfg.Exchange.Source)
	}
	if cfg.Exchange.QuotaPerUnit < 0 {
		return fmt.Errorf("exchange.quota_per_unit: must not be negative, got %v", cfg.Exchange.QuotaPerUnit)
	}

	for group, ratio := range cfg.Pricing.GroupRatios {
		if ratio < 0 {
			return fmt.Errorf("pricing.group_ratios[%q]: must not be negative, got %v", group, ratio)
		}
	}
	if cfg.Pricing.DefaultGroupRatio < 0 {
		return fmt.Errorf("pricing.default_group_ratio: must not be negative, got %v", cfg.Pricing.DefaultGroupRatio)
	}

	if cfg.Tiers.TaxRate < 0 || cfg.Tiers.TaxRate >= 1 {
		return fmt.Errorf("tiers.tax_rate: must be in [0, 1), got %v", cfg.Tiers.TaxRate)
	}
	if cfg.Tiers.ReferencePrice <= 0 {
		return fmt.Errorf("tiers.reference_price: must be positive, got %v", cfg.Tiers.ReferencePrice)
	}
	for tier, markup := range cfg.Tiers.Markups {
		if markup < 1.0 {
			return fmt.Errorf("tiers.markups[%q]: must be >= 1.0, got %v", tier, markup)
		}
	}

	if cfg.Audit.Enabled && cfg.Audit.DBPath == "" {
		return fmt.Errorf("audit.db_path: required when audit is enabled")
	}
	if cfg.Audit.RetentionDays < 0 {
		return fmt.Errorf("audit.retention_days: must not be negative, got %d", cfg.Audit.RetentionDays)
	}
	if cfg.Audit.MaxRecords < 0 {
		return fmt.Errorf("audit.max_records: must not be negative, got %d", cfg.Audit.MaxRecords)
	}
	if cfg.Audit.PruneSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Audit.PruneSchedule); err != nil {
			return fmt.Errorf("audit.prune_schedule: invalid cron expression %q: %w", cfg.Audit.PruneSchedule, err)
		}
	}

	if !validLogLevels[cfg.Telemetry.Logging.Level] {
		return fmt.Errorf("telemetry.logging.level: unknown level %q", cfg.Telemetry.Logging.Level)
	}
	if !validLogFormats[cfg.Telemetry.Logging.Format] {
		return fmt.Errorf("telemetry.logging.format: unknown format %q", cfg.Telemetry.Logging.Format)
	}
	if cfg.Telemetry.Metrics.Enabled && cfg.Telemetry.Metrics.ListenAddress == "" {
		return fmt.Errorf("telemetry.metrics.listen_address: required when metrics are enabled")
	}

	return nil
}
