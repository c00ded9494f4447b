// Package config defines the configuration model for Abacus and
// provides loading, defaulting, and validation.
//
// Configuration lives in a YAML file, with environment variable
// overrides under the ABACUS_ prefix (e.g. ABACUS_AUDIT_DB_PATH).
// Loading applies file values over defaults, then environment
// overrides, then validates the final result.
//
// # Example
//
//	exchange:
//	  source: sqlite
//	  path: data/options.db
//	tiers:
//	  tax_rate: 0.06
//	  reference_price: 1.0
//	audit:
//	  enabled: true
//	  db_path: data/audit.db
//	  retention_days: 90
//	  prune_schedule: "0 3 * * *"
//	telemetry:
//	  logging:
//	    level: info
//	    format: console
package config
