package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quotient-hq/abacus/pkg/config"
)

// Metrics tracks pricing-engine metrics.
type Metrics struct {
	registry *prometheus.Registry

	evaluations           *prometheus.CounterVec
	evaluationCost        *prometheus.HistogramVec
	conversionUnavailable prometheus.Counter
	tierQuotes            *prometheus.CounterVec
	settingsReloads       *prometheus.CounterVec
}

// New creates and registers pricing metrics with the provided
// registry. A nil registry gets a fresh private one.
func New(cfg *config.MetricsConfig, registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,

		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluations_total",
				Help:      "Cost evaluations by variant",
			},
			[]string{"variant"},
		),

		evaluationCost: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_cost",
				Help:      "Cost distribution per evaluation in currency units",
				// Buckets sized for LLM call costs: fractions of a cent
				// up to tens of dollars.
				Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"variant"},
		),

		conversionUnavailable: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "conversion_unavailable_total",
				Help:      "Quota conversions that failed due to an unusable exchange rate",
			},
		),

		tierQuotes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tier_quotes_total",
				Help:      "Tier tables computed, by pricing mode",
			},
			[]string{"mode"},
		),

		settingsReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "settings_reloads_total",
				Help:      "Settings snapshots loaded, by source",
			},
			[]string{"source"},
		),
	}

	registry.MustRegister(
		m.evaluations,
		m.evaluationCost,
		m.conversionUnavailable,
		m.tierQuotes,
		m.settingsReloads,
	)

	return m
}

// RecordEvaluation records one cost evaluation.
func (m *Metrics) RecordEvaluation(variant string, cost float64) {
	m.evaluations.WithLabelValues(variant).Inc()
	if cost >= 0 {
		m.evaluationCost.WithLabelValues(variant).Observe(cost)
	}
}

// RecordConversionUnavailable records a failed quota conversion.
func (m *Metrics) RecordConversionUnavailable() {
	m.conversionUnavailable.Inc()
}

// RecordTierQuote records one computed tier table.
func (m *Metrics) RecordTierQuote(highCost bool) {
	mode := "normal"
	if highCost {
		mode = "high_cost"
	}
	m.tierQuotes.WithLabelValues(mode).Inc()
}

// RecordSettingsReload records one settings snapshot load.
func (m *Metrics) RecordSettingsReload(source string) {
	m.settingsReloads.WithLabelValues(source).Inc()
}

// Handler returns an HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
