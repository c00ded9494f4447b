package config

import "time"

// Config is the root configuration structure for Abacus. It contains
// all sections for the exchange settings source, pricing defaults,
// tier calculation, the audit ledger, and telemetry.
type Config struct {
	// Exchange selects the settings source providing the exchange
	// configuration (quota per unit, display mode).
	Exchange ExchangeConfig `yaml:"exchange"`

	// Pricing contains default ratio sets and group ratios used when a
	// request does not carry its own.
	Pricing PricingConfig `yaml:"pricing"`

	// Tiers contains defaults for the resale tier calculator.
	Tiers TiersConfig `yaml:"tiers"`

	// Audit contains configuration for the audit ledger including
	// storage path and retention.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry contains observability configuration: logging and
	// metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ExchangeConfig selects and configures the settings source for
// exchange configuration.
type ExchangeConfig struct {
	// Source is the settings source kind: "static", "env", "file", or
	// "sqlite".
	// Default: "static"
	Source string `yaml:"source"`

	// Path is the settings file or database path for the file and
	// sqlite sources.
	Path string `yaml:"path"`

	// Watch enables live reload of the file source.
	// Default: true
	Watch bool `yaml:"watch"`

	// QuotaPerUnit seeds the static source when no external store is
	// configured.
	// Default: 500000
	QuotaPerUnit float64 `yaml:"quota_per_unit"`

	// DisplayInCurrency seeds the static source's display mode.
	// Default: true
	DisplayInCurrency bool `yaml:"display_in_currency"`
}

// PricingConfig contains pricing defaults.
type PricingConfig struct {
	// GroupRatios maps billing group names to discount multipliers.
	GroupRatios map[string]float64 `yaml:"group_ratios"`

	// DefaultGroupRatio applies when a group has no entry in
	// GroupRatios.
	// Default: 1.0
	DefaultGroupRatio float64 `yaml:"default_group_ratio"`
}

// TiersConfig contains defaults for the resale tier calculator.
type TiersConfig struct {
	// TaxRate is the default tax fraction of the sell price.
	// Default: 0.06
	TaxRate float64 `yaml:"tax_rate"`

	// ReferencePrice is the default public reference price.
	// Default: 1.0
	ReferencePrice float64 `yaml:"reference_price"`

	// Markups maps tier names to markup multipliers.
	// Default: the standard five-member ladder (1.40 down to 1.20).
	Markups map[string]float64 `yaml:"markups"`
}

// AuditConfig contains configuration for the audit ledger.
type AuditConfig struct {
	// Enabled turns audit recording on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database file for audit records.
	// Default: "data/audit.db"
	DBPath string `yaml:"db_path"`

	// RetentionDays is how long records are kept. Zero disables
	// age-based pruning.
	// Default: 90
	RetentionDays int `yaml:"retention_days"`

	// MaxRecords caps the number of stored records. Zero disables the
	// cap.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is a cron expression for scheduled pruning. Empty
	// disables the scheduler.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`

	// BusyTimeout is how long to wait for database locks.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: json, text, or console.
	// Default: "console"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "abacus"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem label.
	// Default: "pricing"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress is where the metrics endpoint listens when served.
	// Default: "127.0.0.1:9180"
	ListenAddress string `yaml:"listen_address"`
}
