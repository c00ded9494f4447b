package tiers

// SweepRow is one step of the ratio/profit sweep.
type SweepRow struct {
	Ratio      float64 `json:"ratio"`
	SellPrice  float64 `json:"sell_price"`
	Tax        float64 `json:"tax"`
	Profit     float64 `json:"profit"`
	ProfitRate float64 `json:"profit_rate"`
}

// sweepSteps is the number of 0.05 increments in [0, 1].
const sweepSteps = 20

// Sweep produces the ratio/profit table used to visualize the profit
// curve independent of configured tiers.
//
// Rows start at the smallest multiple of 0.05 strictly greater than
// the break-even ratio and step by 0.05 up to and including 1.0. A
// break-even ratio at or above 1.0 yields an empty table.
func Sweep(in Input) ([]SweepRow, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	breakEvenRatio := in.CostRatio / (1 - in.TaxRate)
	costPrice := in.ReferencePrice * in.CostRatio

	// Iterate in integer steps of 1/20 so float drift cannot skip or
	// duplicate a row.
	start := int(breakEvenRatio*sweepSteps) + 1
	if start < 1 {
		start = 1
	}

	var rows []SweepRow
	for step := start; step <= sweepSteps; step++ {
		ratio := float64(step) / sweepSteps
		if ratio <= breakEvenRatio {
			continue
		}

		sellPrice := ratio * in.ReferencePrice
		tax := sellPrice * in.TaxRate
		profit := sellPrice - tax - costPrice

		rows = append(rows, SweepRow{
			Ratio:      ratio,
			SellPrice:  sellPrice,
			Tax:        tax,
			Profit:     profit,
			ProfitRate: profit / sellPrice,
		})
	}

	return rows, nil
}
