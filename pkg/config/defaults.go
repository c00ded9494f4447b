package config

import "time"

// Default values used by NewDefaultConfig.
const (
	DefaultExchangeSource    = "static"
	DefaultQuotaPerUnit      = 500000
	DefaultGroupRatio        = 1.0
	DefaultTaxRate           = 0.06
	DefaultReferencePrice    = 1.0
	DefaultAuditDBPath       = "data/audit.db"
	DefaultRetentionDays     = 90
	DefaultPruneSchedule     = "0 3 * * *"
	DefaultAuditBusyTimeout  = 5 * time.Second
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "console"
	DefaultMetricsNamespace  = "abacus"
	DefaultMetricsSubsystem  = "pricing"
	DefaultMetricsListenAddr = "127.0.0.1:9180"
)

// DefaultMarkups returns the standard member-tier markup ladder.
func DefaultMarkups() map[string]float64 {
	return map[string]float64{
		"regular":  1.40,
		"silver":   1.35,
		"gold":     1.30,
		"platinum": 1.25,
		"diamond":  1.20,
	}
}

// NewDefaultConfig returns a configuration with all defaults applied.
//
// LoadConfig unmarshals the config file on top of this struct, so a
// key absent from the file keeps its default while an explicitly
// configured zero or false survives loading as written.
func NewDefaultConfig() *Config {
	return &Config{
		Exchange: ExchangeConfig{
			Source:            DefaultExchangeSource,
			Watch:             true,
			QuotaPerUnit:      DefaultQuotaPerUnit,
			DisplayInCurrency: true,
		},
		Pricing: PricingConfig{
			GroupRatios:       map[string]float64{},
			DefaultGroupRatio: DefaultGroupRatio,
		},
		Tiers: TiersConfig{
			TaxRate:        DefaultTaxRate,
			ReferencePrice: DefaultReferencePrice,
			Markups:        DefaultMarkups(),
		},
		Audit: AuditConfig{
			DBPath:        DefaultAuditDBPath,
			RetentionDays: DefaultRetentionDays,
			PruneSchedule: DefaultPruneSchedule,
			BusyTimeout:   DefaultAuditBusyTimeout,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:  DefaultLogLevel,
				Format: DefaultLogFormat,
			},
			Metrics: MetricsConfig{
				Namespace:     DefaultMetricsNamespace,
				Subsystem:     DefaultMetricsSubsystem,
				ListenAddress: DefaultMetricsListenAddr,
			},
		},
	}
}
