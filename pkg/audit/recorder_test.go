package audit

import (
	"context"
	"encoding/json"
	"testing"

	"quotient-hq/abacus/pkg/pricing"
	"quotient-hq/abacus/pkg/pricing/tiers"
)

func TestRecordBreakdown(t *testing.T) {
	storage := NewMemoryStorage()
	recorder := NewRecorder(storage)
	ctx := context.Background()

	breakdown, err := pricing.Evaluate(pricing.Request{
		Variant: pricing.VariantText,
		Usage: pricing.Usage{
			InputTokens:      1_000_000,
			CompletionTokens: 500_000,
		},
		Ratios: pricing.Ratios{
			Model:      1.0,
			Completion: 3.0,
		},
		GroupRatio: 1.0,
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	id, err := recorder.RecordBreakdown(ctx, breakdown)
	if err != nil {
		t.Fatalf("RecordBreakdown failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty record ID")
	}

	rec, err := storage.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.Kind != KindCost {
		t.Errorf("expected kind %q, got %q", KindCost, rec.Kind)
	}
	if rec.Total != breakdown.Total {
		t.Errorf("expected total %v, got %v", breakdown.Total, rec.Total)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("expected non-zero created_at")
	}

	var stored pricing.Breakdown
	if err := json.Unmarshal(rec.Detail, &stored); err != nil {
		t.Fatalf("detail is not valid JSON: %v", err)
	}
	if stored.Variant != breakdown.Variant {
		t.Errorf("expected variant %q in detail, got %q", breakdown.Variant, stored.Variant)
	}
	if len(stored.Items) != len(breakdown.Items) {
		t.Errorf("expected %d line items in detail, got %d", len(breakdown.Items), len(stored.Items))
	}
}

func TestRecordTierTable(t *testing.T) {
	storage := NewMemoryStorage()
	recorder := NewRecorder(storage)
	ctx := context.Background()

	result, err := tiers.Calculate(tiers.Input{
		CostRatio:      0.6,
		TaxRate:        0.06,
		ReferencePrice: 1.0,
		Markups:        map[string]float64{"standard": 1.40},
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	id, err := recorder.RecordTierTable(ctx, result)
	if err != nil {
		t.Fatalf("RecordTierTable failed: %v", err)
	}

	rec, err := storage.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.Kind != KindTier {
		t.Errorf("expected kind %q, got %q", KindTier, rec.Kind)
	}
	if rec.Total != result.BreakEvenRatio {
		t.Errorf("expected total %v, got %v", result.BreakEvenRatio, rec.Total)
	}

	var stored tiers.Result
	if err := json.Unmarshal(rec.Detail, &stored); err != nil {
		t.Fatalf("detail is not valid JSON: %v", err)
	}
	if len(stored.Quotes) != len(result.Quotes) {
		t.Errorf("expected %d quotes in detail, got %d", len(result.Quotes), len(stored.Quotes))
	}
}

func TestRecorderDistinctIDs(t *testing.T) {
	storage := NewMemoryStorage()
	recorder := NewRecorder(storage)
	ctx := context.Background()

	breakdown, err := pricing.Evaluate(pricing.Request{
		Variant:    pricing.VariantText,
		Usage:      pricing.Usage{InputTokens: 100},
		Ratios:     pricing.Ratios{Model: 1.0},
		GroupRatio: 1.0,
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		id, err := recorder.RecordBreakdown(ctx, breakdown)
		if err != nil {
			t.Fatalf("RecordBreakdown failed: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate record ID %q", id)
		}
		seen[id] = true
	}

	count, err := storage.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 10 {
		t.Errorf("expected 10 records, got %d", count)
	}
}
