package settings

import (
	"context"
	"errors"
	"math"
	"strconv"
)

// Exchange is a point-in-time snapshot of the exchange configuration.
//
// A snapshot is only valid for the call that loaded it. Callers must
// re-load before every conversion so a rate change in the store is
// observed on the next render.
type Exchange struct {
	// QuotaPerUnit is the number of quota units per one currency unit.
	QuotaPerUnit float64

	// DisplayInCurrency selects currency formatting over raw quota
	// numbers.
	DisplayInCurrency bool
}

// Available reports whether the snapshot can be used for conversion.
// A missing or non-positive quota_per_unit makes conversion unavailable
// rather than producing Inf or NaN downstream.
func (e Exchange) Available() bool {
	return e.QuotaPerUnit > 0 && !math.IsInf(e.QuotaPerUnit, 0) && !math.IsNaN(e.QuotaPerUnit)
}

// LoadExchange reads and parses the exchange configuration from the
// source.
//
// Parsing is defensive: a missing or unparseable quota_per_unit yields
// an unavailable snapshot (QuotaPerUnit zero) with no error, matching
// the store's loose string typing. display_in_currency accepts the
// strings "true" and "false"; anything else reads as false. Only
// backend failures other than a missing key are reported as errors.
func LoadExchange(ctx context.Context, src Source) (Exchange, error) {
	var ex Exchange

	raw, err := src.Get(ctx, KeyQuotaPerUnit)
	switch {
	case errors.Is(err, ErrNotFound):
		// Leave QuotaPerUnit zero: conversion unavailable.
	case err != nil:
		return Exchange{}, err
	default:
		if v, perr := strconv.ParseFloat(raw, 64); perr == nil {
			ex.QuotaPerUnit = v
		}
	}

	raw, err = src.Get(ctx, KeyDisplayInCurrency)
	switch {
	case errors.Is(err, ErrNotFound):
		// Default false.
	case err != nil:
		return Exchange{}, err
	default:
		ex.DisplayInCurrency = raw == "true"
	}

	return ex, nil
}
