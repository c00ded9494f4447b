// Package metrics exposes Prometheus metrics for the pricing engine.
//
// Metrics:
//   - abacus_pricing_evaluations_total: evaluations by variant
//   - abacus_pricing_evaluation_cost: cost distribution per evaluation
//   - abacus_pricing_conversion_unavailable_total: quota conversions
//     that failed because the exchange rate was unusable
//   - abacus_pricing_tier_quotes_total: tier tables computed, by
//     pricing mode (normal vs high-cost)
//   - abacus_pricing_settings_reloads_total: settings snapshots loaded
//
// The embedding process registers the metrics against its own registry
// and serves them with Handler.
package metrics
