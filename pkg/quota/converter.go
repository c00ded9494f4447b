package quota

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"quotient-hq/abacus/pkg/settings"
)

// CurrencySymbol prefixes currency-mode output.
const CurrencySymbol = "$"

// Default digit counts for the formatting methods.
const (
	// DefaultCurrencyDigits is used for user-facing currency amounts.
	DefaultCurrencyDigits = 2

	// DefaultUnitDigits is used for precise audit values.
	DefaultUnitDigits = 6
)

// ErrUnavailable is returned when the exchange rate is missing, zero,
// or unparseable and conversion cannot be performed.
var ErrUnavailable = errors.New("quota: conversion unavailable")

// Converter converts quota values using the exchange configuration
// from a settings source.
//
// The converter holds no state besides the source: every method
// reloads the exchange snapshot, so a rate change in the store is
// reflected on the next call.
type Converter struct {
	src settings.Source
}

// NewConverter creates a converter reading exchange configuration from
// the given source.
func NewConverter(src settings.Source) *Converter {
	return &Converter{src: src}
}

// DisplayNumber renders a quota value in abbreviated human form.
//
// Thresholds: >= 1e9 renders billions with one decimal and a "B"
// suffix, >= 1e6 millions with "M", >= 1e4 thousands with "k". Below
// that the raw integer is returned. Non-finite input renders as 0.
func DisplayNumber(quota float64) string {
	quota = sanitize(quota)

	switch {
	case quota >= 1_000_000_000:
		return strconv.FormatFloat(quota/1_000_000_000, 'f', 1, 64) + "B"
	case quota >= 1_000_000:
		return strconv.FormatFloat(quota/1_000_000, 'f', 1, 64) + "M"
	case quota >= 10_000:
		return strconv.FormatFloat(quota/1_000, 'f', 1, 64) + "k"
	default:
		return strconv.FormatFloat(quota, 'f', -1, 64)
	}
}

// Currency renders a quota value according to the current display
// mode.
//
// In currency mode the result is the currency symbol plus the amount
// formatted to digits decimals. Otherwise it falls back to
// DisplayNumber. Returns ErrUnavailable when currency mode is active
// but the exchange rate cannot be used.
func (c *Converter) Currency(ctx context.Context, quota float64, digits int) (string, error) {
	ex, err := settings.LoadExchange(ctx, c.src)
	if err != nil {
		return "", fmt.Errorf("failed to load exchange settings: %w", err)
	}

	if !ex.DisplayInCurrency {
		return DisplayNumber(quota), nil
	}
	if !ex.Available() {
		return "", ErrUnavailable
	}

	quota = sanitize(quota)
	return CurrencySymbol + strconv.FormatFloat(quota/ex.QuotaPerUnit, 'f', digits, 64), nil
}

// FromCurrency converts a currency amount to quota units.
// Returns ErrUnavailable when the exchange rate cannot be used.
func (c *Converter) FromCurrency(ctx context.Context, amount float64) (float64, error) {
	ex, err := settings.LoadExchange(ctx, c.src)
	if err != nil {
		return 0, fmt.Errorf("failed to load exchange settings: %w", err)
	}
	if !ex.Available() {
		return 0, ErrUnavailable
	}

	return sanitize(amount) * ex.QuotaPerUnit, nil
}

// UnitString renders a quota value as a raw currency amount with
// digits decimals, ignoring the display mode. Used for precise audit
// values. Returns ErrUnavailable when the exchange rate cannot be
// used.
func (c *Converter) UnitString(ctx context.Context, quota float64, digits int) (string, error) {
	ex, err := settings.LoadExchange(ctx, c.src)
	if err != nil {
		return "", fmt.Errorf("failed to load exchange settings: %w", err)
	}
	if !ex.Available() {
		return "", ErrUnavailable
	}

	return strconv.FormatFloat(sanitize(quota)/ex.QuotaPerUnit, 'f', digits, 64), nil
}

// sanitize maps non-finite input to zero so formatting never emits
// "NaN" or "Inf".
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
