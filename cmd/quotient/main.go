// Quotient is the command-line console for the Abacus quota and
// pricing library.
//
// It converts between raw quota units and currency, evaluates model
// cost breakdowns, and produces resale tier tables:
//
//	# Render a quota amount using the configured exchange settings
//	quotient convert 1234567
//
//	# Evaluate a cost breakdown from a usage file
//	quotient cost --file usage.yaml
//
//	# Produce a resale tier table
//	quotient tiers --cost-ratio 0.6 --reference-price 1.0
//
//	# Profit curve across candidate sell ratios
//	quotient tiers sweep --cost-ratio 0.6
//
//	# Inspect recorded computations
//	quotient audit list --kind cost
//
//	# Serve the metrics endpoint with live settings reload
//	quotient serve
//
// For complete documentation, see: https://github.com/quotient-hq/abacus
package main

func main() {
	Execute()
}
