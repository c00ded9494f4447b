package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified
// path, validates it, and returns any errors.
//
// The file is decoded on top of NewDefaultConfig, so only keys present
// in the file override defaults. An explicit zero tax rate or
// watch: false is kept as written.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := NewDefaultConfig()
	// Maps decode by merging into existing entries. Clear the defaulted
	// maps first so a markups or group_ratios block in the file replaces
	// the defaults rather than mixing with them.
	cfg.Tiers.Markups = nil
	cfg.Pricing.GroupRatios = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if cfg.Tiers.Markups == nil {
		cfg.Tiers.Markups = DefaultMarkups()
	}
	if cfg.Pricing.GroupRatios == nil {
		cfg.Pricing.GroupRatios = map[string]float64{}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides under the ABACUS_ prefix
// (e.g. ABACUS_AUDIT_DB_PATH). Environment variables always take
// precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies ABACUS_SECTION_FIELD environment variables
// to the configuration.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("ABACUS_EXCHANGE_SOURCE"); val != "" {
		cfg.Exchange.Source = val
	}
	if val := os.Getenv("ABACUS_EXCHANGE_PATH"); val != "" {
		cfg.Exchange.Path = val
	}
	if val := os.Getenv("ABACUS_EXCHANGE_QUOTA_PER_UNIT"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Exchange.QuotaPerUnit = f
		}
	}
	if val := os.Getenv("ABACUS_EXCHANGE_DISPLAY_IN_CURRENCY"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Exchange.DisplayInCurrency = b
		}
	}

	if val := os.Getenv("ABACUS_TIERS_TAX_RATE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Tiers.TaxRate = f
		}
	}
	if val := os.Getenv("ABACUS_TIERS_REFERENCE_PRICE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Tiers.ReferencePrice = f
		}
	}

	if val := os.Getenv("ABACUS_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("ABACUS_AUDIT_DB_PATH"); val != "" {
		cfg.Audit.DBPath = val
	}
	if val := os.Getenv("ABACUS_AUDIT_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Audit.RetentionDays = i
		}
	}
	if val := os.Getenv("ABACUS_AUDIT_MAX_RECORDS"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Audit.MaxRecords = i
		}
	}
	if val := os.Getenv("ABACUS_AUDIT_PRUNE_SCHEDULE"); val != "" {
		cfg.Audit.PruneSchedule = val
	}
	if val := os.Getenv("ABACUS_AUDIT_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Audit.BusyTimeout = d
		}
	}

	if val := os.Getenv("ABACUS_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("ABACUS_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("ABACUS_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("ABACUS_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
}
