package tiers

import "strconv"

// Display formatting helpers. Rounding here is presentation-only; the
// stored Quote and SweepRow values keep full precision.

// FormatRatio renders a sell ratio to 3 decimals.
func FormatRatio(ratio float64) string {
	return strconv.FormatFloat(ratio, 'f', 3, 64)
}

// FormatPercent renders a rate (0.2257 -> "22.6%") to 1 decimal.
func FormatPercent(rate float64) string {
	return strconv.FormatFloat(rate*100, 'f', 1, 64) + "%"
}

// FormatPercentValue renders an already-scaled percentage (40.0 ->
// "40.0%") to 1 decimal.
func FormatPercentValue(percent float64) string {
	return strconv.FormatFloat(percent, 'f', 1, 64) + "%"
}

// FormatPrice renders a currency amount to 4 decimals.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 4, 64)
}
