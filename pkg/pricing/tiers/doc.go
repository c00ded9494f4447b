// Package tiers computes resale price tables for API-credit resale.
//
// Given the wholesale cost ratio (cost as a fraction of the public
// reference price), the applicable tax rate, and the reference price,
// the calculator produces one quote per member tier by applying the
// tier's markup multiplier to the cost price, capped at the reference
// price. The reserved break-even tier always sells at the zero-margin
// floor.
//
// # High-cost mode
//
// When the cost ratio reaches 1 - taxRate, the break-even ratio meets
// or exceeds 1.0: no tier can apply its normal markup without selling
// above the reference price. Every tier then collapses to the
// break-even ratio.
//
// All arithmetic stays in full float64 precision; formatting helpers
// round for display only (ratios to 3 decimals, percentages to 1,
// currency to 4) without touching the stored values.
package tiers
