// Package quota converts between the gateway's internal quota unit and
// display values.
//
// Quota is the integer billing unit used across the gateway; the
// exchange rate (quota units per currency unit) lives in the settings
// store and can change at any time. The converter therefore reloads
// the exchange snapshot from its source on every call instead of
// caching it.
//
// # Display modes
//
// When display-in-currency is enabled, quota renders as a currency
// amount ("$1.50"). Otherwise large values abbreviate: 1.5k, 2.3M,
// 1.0B.
//
// # Unavailable conversion
//
// A missing, zero, or unparseable exchange rate makes currency
// conversion unavailable. Converter methods return ErrUnavailable in
// that case so callers can render a fallback ("—") rather than Inf or
// NaN.
package quota
