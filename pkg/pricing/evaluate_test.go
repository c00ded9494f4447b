package pricing

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func f64(v float64) *float64 { return &v }

func sumItems(b *Breakdown) float64 {
	var sum float64
	for _, item := range b.Items {
		sum += item.Subtotal
	}
	return sum
}

func TestEvaluateTextBaseline(t *testing.T) {
	// A model ratio of 1.0 must price input at exactly $2 per 1M
	// tokens.
	b, err := Evaluate(Request{
		Variant:    VariantText,
		Usage:      Usage{InputTokens: 1_000_000},
		Ratios:     Ratios{Model: 1.0},
		GroupRatio: 1.0,
	})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if b.Total != 2.0 {
		t.Errorf("Total = %v, want 2.0", b.Total)
	}
	if b.Items[0].UnitPrice != 2.0 {
		t.Errorf("input unit price = %v, want 2.0", b.Items[0].UnitPrice)
	}
}

func TestEvaluateText(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		wantTotal float64
	}{
		{
			name: "input and completion",
			req: Request{
				Variant:    VariantText,
				Usage:      Usage{InputTokens: 1_000_000, CompletionTokens: 500_000},
				Ratios:     Ratios{Model: 1.0, Completion: 2.0},
				GroupRatio: 1.0,
			},
			// 2.0 + 0.5 * 2.0 * 2.0
			wantTotal: 4.0,
		},
		{
			name: "group ratio scales everything",
			req: Request{
				Variant:    VariantText,
				Usage:      Usage{InputTokens: 1_000_000, CompletionTokens: 500_000},
				Ratios:     Ratios{Model: 1.0, Completion: 2.0},
				GroupRatio: 0.5,
			},
			wantTotal: 2.0,
		},
		{
			name: "unset completion ratio prices completion at zero",
			req: Request{
				Variant:    VariantText,
				Usage:      Usage{InputTokens: 1_000_000, CompletionTokens: 1_000_000},
				Ratios:     Ratios{Model: 1.0},
				GroupRatio: 1.0,
			},
			wantTotal: 2.0,
		},
		{
			name: "cache read tokens discounted",
			req: Request{
				Variant:    VariantText,
				Usage:      Usage{InputTokens: 1_000_000, CacheTokens: 500_000},
				Ratios:     Ratios{Model: 1.0, Cache: 0.1},
				GroupRatio: 1.0,
			},
			// (1M - 0.5M)/1M * 2 + 0.5M/1M * 2 * 0.1
			wantTotal: 1.1,
		},
		{
			name: "web and file search billed per 1K calls",
			req: Request{
				Variant: VariantText,
				Usage:   Usage{InputTokens: 1_000_000, WebSearchCalls: 100, FileSearchCalls: 50},
				Ratios: Ratios{
					Model:           1.0,
					WebSearchPrice:  10.0,
					FileSearchPrice: 2.5,
				},
				GroupRatio: 1.0,
			},
			// 2.0 + 100/1000*10 + 50/1000*2.5
			wantTotal: 3.125,
		},
		{
			name: "separately priced audio input leaves the token pool",
			req: Request{
				Variant:    VariantText,
				Usage:      Usage{InputTokens: 1_000_000, AudioInputTokens: 400_000},
				Ratios:     Ratios{Model: 1.0, AudioInputPrice: 6.0},
				GroupRatio: 1.0,
			},
			// 0.6M/1M * 2 + 0.4M/1M * 6
			wantTotal: 3.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Evaluate(tt.req)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if math.Abs(b.Total-tt.wantTotal) > 1e-12 {
				t.Errorf("Total = %v, want %v", b.Total, tt.wantTotal)
			}
			if math.Abs(sumItems(b)-b.Total) > 1e-12 {
				t.Errorf("line items sum to %v, total is %v", sumItems(b), b.Total)
			}
		})
	}
}

func TestEvaluateFlatPrice(t *testing.T) {
	b, err := Evaluate(Request{
		Variant: VariantText,
		// Usage must be ignored entirely.
		Usage:      Usage{InputTokens: 5_000_000, CompletionTokens: 5_000_000},
		Ratios:     Ratios{Model: 100, Completion: 100},
		ModelPrice: f64(0.25),
		GroupRatio: 0.8,
	})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if b.Total != 0.25*0.8 {
		t.Errorf("Total = %v, want %v", b.Total, 0.25*0.8)
	}
	if len(b.Items) != 1 || b.Items[0].Component != ComponentFlatPrice {
		t.Errorf("flat price breakdown should have a single flat price item, got %+v", b.Items)
	}
}

func TestEvaluateImageReplacesCacheAdjustment(t *testing.T) {
	// Image output tokens and cache tokens both present: the image
	// adjustment wins and cache tokens are not billed separately.
	b, err := Evaluate(Request{
		Variant: VariantImage,
		Usage: Usage{
			InputTokens:       1_000_000,
			ImageOutputTokens: 200_000,
			CacheTokens:       300_000,
		},
		Ratios:     Ratios{Model: 1.0, Image: 3.0, Cache: 0.1},
		GroupRatio: 1.0,
	})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	// 0.8M/1M * 2 + 0.2M/1M * 2 * 3
	want := 1.6 + 1.2
	if math.Abs(b.Total-want) > 1e-12 {
		t.Errorf("Total = %v, want %v", b.Total, want)
	}
	for _, item := range b.Items {
		if item.Component == ComponentCacheRead {
			t.Error("cache read item should be absent in image mode")
		}
	}
}

func TestEvaluateImageWithoutImageTokens(t *testing.T) {
	// No image output tokens: the image variant degrades to text
	// pricing, including the cache adjustment.
	req := Request{
		Usage:      Usage{InputTokens: 1_000_000, CacheTokens: 500_000},
		Ratios:     Ratios{Model: 1.0, Cache: 0.5, Image: 3.0},
		GroupRatio: 1.0,
	}
	req.Variant = VariantImage
	asImage, err := Evaluate(req)
	if err != nil {
		t.Fatalf("Evaluate(image) error = %v", err)
	}
	req.Variant = VariantText
	asText, err := Evaluate(req)
	if err != nil {
		t.Fatalf("Evaluate(text) error = %v", err)
	}
	if asImage.Total != asText.Total {
		t.Errorf("image variant without image tokens = %v, text = %v", asImage.Total, asText.Total)
	}
}

func TestEvaluateAudio(t *testing.T) {
	b, err := Evaluate(Request{
		Variant: VariantAudio,
		Usage: Usage{
			InputTokens:           1_000_000,
			CompletionTokens:      500_000,
			AudioInputTokens:      100_000,
			AudioCompletionTokens: 50_000,
		},
		Ratios: Ratios{
			Model:           1.0,
			Completion:      2.0,
			Audio:           8.0,
			AudioCompletion: 2.0,
		},
		GroupRatio: 1.0,
	})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	// text: 2.0 + 0.5*4 = 4.0
	// audio: 0.1*2*8 + 0.05*2*8*2 = 1.6 + 1.6 = 3.2
	want := 7.2
	if math.Abs(b.Total-want) > 1e-12 {
		t.Errorf("Total = %v, want %v", b.Total, want)
	}
}

func TestEvaluateClaudeStacksCacheComponents(t *testing.T) {
	// Claude semantics: input tokens exclude cached tokens, cache
	// reads and cache writes are additive line items.
	b, err := Evaluate(Request{
		Variant: VariantClaude,
		Usage: Usage{
			InputTokens:         1_000_000,
			CompletionTokens:    200_000,
			CacheTokens:         500_000,
			CacheCreationTokens: 100_000,
		},
		Ratios: Ratios{
			Model:         1.5,
			Completion:    5.0,
			Cache:         0.1,
			CacheCreation: 1.25,
		},
		GroupRatio: 1.0,
	})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	inputUnit := 1.5 * 2.0
	want := 1.0*inputUnit +
		0.5*inputUnit*0.1 +
		0.1*inputUnit*1.25 +
		0.2*inputUnit*5.0
	if math.Abs(b.Total-want) > 1e-12 {
		t.Errorf("Total = %v, want %v", b.Total, want)
	}

	var components []string
	for _, item := range b.Items {
		components = append(components, item.Component)
	}
	want4 := []string{ComponentInput, ComponentCacheRead, ComponentCacheCreation, ComponentCompletion}
	if !reflect.DeepEqual(components, want4) {
		t.Errorf("components = %v, want %v", components, want4)
	}
}

func TestResolveGroupRatio(t *testing.T) {
	tests := []struct {
		name       string
		groupRatio float64
		override   *float64
		wantRatio  float64
		wantSource RateSource
	}{
		{"no override", 0.9, nil, 0.9, RateSourceGroup},
		{"override applies", 0.9, f64(0.5), 0.5, RateSourceUser},
		{"sentinel override ignored", 0.9, f64(-1), 0.9, RateSourceGroup},
		{"nan override ignored", 0.9, f64(math.NaN()), 0.9, RateSourceGroup},
		{"inf override ignored", 0.9, f64(math.Inf(1)), 0.9, RateSourceGroup},
		{"zero override applies", 0.9, f64(0), 0, RateSourceUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio, source := ResolveGroupRatio(tt.groupRatio, tt.override)
			if ratio != tt.wantRatio {
				t.Errorf("ratio = %v, want %v", ratio, tt.wantRatio)
			}
			if source != tt.wantSource {
				t.Errorf("source = %v, want %v", source, tt.wantSource)
			}
		})
	}
}

func TestParseWireSentinels(t *testing.T) {
	if got := ParseModelPrice(-1); got != nil {
		t.Errorf("ParseModelPrice(-1) = %v, want nil", *got)
	}
	if got := ParseModelPrice(0.002); got == nil || *got != 0.002 {
		t.Errorf("ParseModelPrice(0.002) = %v, want 0.002", got)
	}
	if got := ParseUserGroupRatio(-1); got != nil {
		t.Errorf("ParseUserGroupRatio(-1) = %v, want nil", *got)
	}
	if got := ParseUserGroupRatio(math.NaN()); got != nil {
		t.Errorf("ParseUserGroupRatio(NaN) = %v, want nil", *got)
	}
	if got := ParseUserGroupRatio(0.75); got == nil || *got != 0.75 {
		t.Errorf("ParseUserGroupRatio(0.75) = %v, want 0.75", got)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	req := Request{
		Variant: VariantClaude,
		Usage: Usage{
			InputTokens:         123_456,
			CompletionTokens:    78_901,
			CacheTokens:         23_456,
			CacheCreationTokens: 3_456,
		},
		Ratios:         Ratios{Model: 1.25, Completion: 4.0, Cache: 0.1, CacheCreation: 1.25},
		GroupRatio:     0.9,
		UserGroupRatio: f64(0.85),
	}

	first, err := Evaluate(req)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	second, err := Evaluate(req)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical requests produced different breakdowns")
	}
}

func TestEvaluateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name: "negative counter",
			req: Request{
				Usage:      Usage{InputTokens: -1},
				Ratios:     Ratios{Model: 1},
				GroupRatio: 1,
			},
			wantErr: ErrNegativeUsage,
		},
		{
			name: "negative ratio",
			req: Request{
				Ratios:     Ratios{Model: -1},
				GroupRatio: 1,
			},
			wantErr: ErrNegativeRatio,
		},
		{
			name: "negative group ratio",
			req: Request{
				Ratios:     Ratios{Model: 1},
				GroupRatio: -0.5,
			},
			wantErr: ErrNegativeRatio,
		},
		{
			name: "negative flat price",
			req: Request{
				Ratios:     Ratios{Model: 1},
				ModelPrice: f64(-0.5),
				GroupRatio: 1,
			},
			wantErr: ErrNegativeRatio,
		},
		{
			name: "unknown variant",
			req: Request{
				Variant:    "video",
				Ratios:     Ratios{Model: 1},
				GroupRatio: 1,
			},
			wantErr: ErrUnknownVariant,
		},
		{
			name: "cache tokens exceed input tokens",
			req: Request{
				Variant:    VariantText,
				Usage:      Usage{InputTokens: 100, CacheTokens: 1000},
				Ratios:     Ratios{Model: 1, Cache: 0.1},
				GroupRatio: 1,
			},
			wantErr: ErrOversizedUsage,
		},
		{
			name: "image tokens exceed input tokens",
			req: Request{
				Variant:    VariantImage,
				Usage:      Usage{InputTokens: 100, ImageOutputTokens: 200},
				Ratios:     Ratios{Model: 1, Image: 3},
				GroupRatio: 1,
			},
			wantErr: ErrOversizedUsage,
		},
		{
			name: "audio cache tokens exceed input tokens",
			req: Request{
				Variant:    VariantAudio,
				Usage:      Usage{InputTokens: 100, CacheTokens: 200},
				Ratios:     Ratios{Model: 1, Cache: 0.1},
				GroupRatio: 1,
			},
			wantErr: ErrOversizedUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Evaluate(tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Evaluate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEvaluateNeverNegative(t *testing.T) {
	// Counters that fully drain the input pool are the boundary case:
	// a zero residual pool is valid, one token more is rejected.
	b, err := Evaluate(Request{
		Variant:    VariantText,
		Usage:      Usage{InputTokens: 1000, CacheTokens: 1000},
		Ratios:     Ratios{Model: 1, Cache: 0.1},
		GroupRatio: 1,
	})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if b.Total < 0 {
		t.Errorf("Total = %v, want non-negative", b.Total)
	}
	for _, item := range b.Items {
		if item.Quantity < 0 || item.Subtotal < 0 {
			t.Errorf("negative line item %+v", item)
		}
	}
}
