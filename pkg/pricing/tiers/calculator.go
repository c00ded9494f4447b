package tiers

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// BreakEvenTier is the reserved tier name whose quote is always the
// zero-margin floor.
const BreakEvenTier = "break-even"

// lowMarginThreshold is the profit rate below which a quote is tagged
// low-margin.
const lowMarginThreshold = 0.02

// profitEpsilon absorbs float rounding around the break-even point so
// a mathematically zero profit is never tagged as a loss.
const profitEpsilon = 1e-9

// Warning tags attached to quotes.
type Warning string

const (
	// WarnNone means the quote carries no warning.
	WarnNone Warning = ""
	// WarnLoss means the quote sells below cost plus tax.
	WarnLoss Warning = "loss"
	// WarnLowMargin means the profit rate is under 2%.
	WarnLowMargin Warning = "low-margin"
)

// BreakEvenNote is attached to the break-even quote.
const BreakEvenNote = "zero-margin floor: covers wholesale cost and tax only"

// ErrInvalidInput is returned for degenerate pricing input.
var ErrInvalidInput = errors.New("tiers: invalid pricing input")

// Input is the cost structure of reselling third-party API credit.
type Input struct {
	// CostRatio is the wholesale price as a fraction of the reference
	// price. Must be > 0.
	CostRatio float64 `yaml:"cost_ratio"`

	// TaxRate is the tax fraction of the sell price. Must satisfy
	// 0 <= TaxRate < 1.
	TaxRate float64 `yaml:"tax_rate"`

	// ReferencePrice is the public reference price. Must be > 0.
	ReferencePrice float64 `yaml:"reference_price"`

	// Markups maps tier names to markup multipliers over the cost
	// price. Each markup must be >= 1.0. The reserved break-even tier
	// needs no entry; it is always included.
	Markups map[string]float64 `yaml:"markups"`
}

// Quote is the resale price for one tier.
type Quote struct {
	Tier           string  `json:"tier"`
	SellRatio      float64 `json:"sell_ratio"`
	SellPrice      float64 `json:"sell_price"`
	Tax            float64 `json:"tax"`
	Profit         float64 `json:"profit"`
	ProfitRate     float64 `json:"profit_rate"`
	MarkupOverCost float64 `json:"markup_over_cost"` // percent over cost price
	Warning        Warning `json:"warning,omitempty"`
	Note           string  `json:"note,omitempty"`
}

// Result is a full tier table.
type Result struct {
	// BreakEvenRatio is the minimum sell ratio that covers cost and
	// tax with zero profit.
	BreakEvenRatio float64 `json:"break_even_ratio"`

	// CostPrice is the wholesale cost in currency.
	CostPrice float64 `json:"cost_price"`

	// HighCost reports that the break-even ratio reaches 1.0 and every
	// tier collapsed to it.
	HighCost bool `json:"high_cost"`

	// Quotes holds the break-even quote first, then the configured
	// tiers ordered by descending markup (name as tiebreaker).
	Quotes []Quote `json:"quotes"`
}

// Calculate produces the tier table for the given input.
func Calculate(in Input) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	breakEvenRatio := in.CostRatio / (1 - in.TaxRate)
	costPrice := in.ReferencePrice * in.CostRatio
	highCost := in.CostRatio >= 1-in.TaxRate

	res := &Result{
		BreakEvenRatio: breakEvenRatio,
		CostPrice:      costPrice,
		HighCost:       highCost,
	}

	res.Quotes = append(res.Quotes, quoteFor(in, BreakEvenTier, breakEvenRatio, costPrice, highCost))

	for _, tier := range orderedTiers(in.Markups) {
		ratio := breakEvenRatio
		if !highCost {
			ratio = math.Min(1.0, costPrice*in.Markups[tier]/in.ReferencePrice)
		}
		res.Quotes = append(res.Quotes, quoteFor(in, tier, ratio, costPrice, highCost))
	}

	return res, nil
}

// quoteFor fills in the derived figures and warning tag for one tier
// at the given sell ratio.
func quoteFor(in Input, tier string, sellRatio, costPrice float64, highCost bool) Quote {
	sellPrice := sellRatio * in.ReferencePrice
	tax := sellPrice * in.TaxRate
	profit := sellPrice - tax - costPrice
	if math.Abs(profit) < profitEpsilon {
		profit = 0
	}

	var profitRate float64
	if sellPrice > 0 {
		profitRate = profit / sellPrice
	}

	q := Quote{
		Tier:           tier,
		SellRatio:      sellRatio,
		SellPrice:      sellPrice,
		Tax:            tax,
		Profit:         profit,
		ProfitRate:     profitRate,
		MarkupOverCost: (sellPrice/costPrice - 1) * 100,
	}

	if tier == BreakEvenTier {
		q.Note = BreakEvenNote
	}

	switch {
	case profitRate < 0:
		q.Warning = WarnLoss
	case profitRate < lowMarginThreshold && !highCost:
		q.Warning = WarnLowMargin
	}

	return q
}

// orderedTiers returns tier names by descending markup, name as
// tiebreaker, so the table order is deterministic.
func orderedTiers(markups map[string]float64) []string {
	tiers := make([]string, 0, len(markups))
	for tier := range markups {
		tiers = append(tiers, tier)
	}
	sort.Slice(tiers, func(i, j int) bool {
		if markups[tiers[i]] != markups[tiers[j]] {
			return markups[tiers[i]] > markups[tiers[j]]
		}
		return tiers[i] < tiers[j]
	})
	return tiers
}

func validate(in Input) error {
	if in.CostRatio <= 0 {
		return fmt.Errorf("%w: cost_ratio must be > 0, got %v", ErrInvalidInput, in.CostRatio)
	}
	if in.TaxRate < 0 || in.TaxRate >= 1 {
		return fmt.Errorf("%w: tax_rate must be in [0, 1), got %v", ErrInvalidInput, in.TaxRate)
	}
	if in.ReferencePrice <= 0 {
		return fmt.Errorf("%w: reference_price must be > 0, got %v", ErrInvalidInput, in.ReferencePrice)
	}
	for tier, markup := range in.Markups {
		if tier == BreakEvenTier {
			return fmt.Errorf("%w: tier name %q is reserved", ErrInvalidInput, BreakEvenTier)
		}
		if markup < 1.0 {
			return fmt.Errorf("%w: markup for tier %q must be >= 1.0, got %v", ErrInvalidInput, tier, markup)
		}
	}
	return nil
}
