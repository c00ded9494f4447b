package pricing

import (
	"errors"
	"fmt"
)

// baselineScale converts a model ratio into the input unit price in
// currency per 1M tokens. A ratio of 1.0 has always meant $0.002 per
// 1K tokens in the gateway's billing records; do not change this
// constant.
const baselineScale = 2.0

const (
	tokensPerMillion = 1_000_000
	callsPerThousand = 1_000
)

// Evaluation input errors.
var (
	// ErrNegativeUsage is returned for negative usage counters.
	// Negative counters are rejected rather than clamped so a corrupt
	// record is surfaced instead of silently under-billed.
	ErrNegativeUsage = errors.New("pricing: negative usage counter")

	// ErrNegativeRatio is returned for negative ratios or prices.
	ErrNegativeRatio = errors.New("pricing: negative ratio")

	// ErrOversizedUsage is returned when special counters that are
	// sub-portions of the input pool (cache, image, separate audio)
	// exceed the input token count. Such records are rejected for the
	// same reason negative counters are: they would bill a negative
	// residual pool.
	ErrOversizedUsage = errors.New("pricing: special counters exceed input tokens")

	// ErrUnknownVariant is returned for an unrecognized variant name.
	ErrUnknownVariant = errors.New("pricing: unknown variant")
)

// Evaluate computes the cost breakdown for one call.
//
// The result depends only on the request: evaluating the same request
// twice yields identical output. Requests with negative counters or
// ratios are rejected; a valid request never produces a negative cost.
func Evaluate(req Request) (*Breakdown, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	groupRatio, source := ResolveGroupRatio(req.GroupRatio, req.UserGroupRatio)

	b := &Breakdown{
		Variant:    req.Variant,
		GroupRatio: groupRatio,
		RateSource: source,
	}

	// A flat model price replaces all token arithmetic.
	if req.ModelPrice != nil {
		b.add(LineItem{
			Component: ComponentFlatPrice,
			Quantity:  1,
			UnitPrice: *req.ModelPrice,
			Subtotal:  *req.ModelPrice * groupRatio,
		})
		return b, nil
	}

	switch req.Variant {
	case VariantText, "":
		if err := evaluateText(b, req, false); err != nil {
			return nil, err
		}
	case VariantImage:
		if err := evaluateText(b, req, true); err != nil {
			return nil, err
		}
	case VariantAudio:
		if err := evaluateAudio(b, req); err != nil {
			return nil, err
		}
	case VariantClaude:
		evaluateClaude(b, req)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, req.Variant)
	}

	return b, nil
}

// evaluateText handles the text and image variants.
//
// The cache, image, and separately-priced audio adjustments reshape a
// single effective input pool and are mutually exclusive: when image
// output tokens are present (image variant) they take the place of the
// cache adjustment; separately-priced audio tokens are carved out of
// whatever pool remains. Counters that would drain the pool below
// zero are rejected with ErrOversizedUsage.
func evaluateText(b *Breakdown, req Request, image bool) error {
	u, r := req.Usage, req.Ratios
	inputUnit := r.Model * baselineScale

	inputTokens := u.InputTokens

	imageMode := image && u.ImageOutputTokens > 0
	cacheMode := !imageMode && u.CacheTokens > 0
	audioSeparate := u.AudioInputTokens > 0

	if imageMode {
		inputTokens -= u.ImageOutputTokens
	}
	if cacheMode {
		inputTokens -= u.CacheTokens
	}
	if audioSeparate {
		inputTokens -= u.AudioInputTokens
	}
	if inputTokens < 0 {
		return fmt.Errorf("%w: residual input pool %d", ErrOversizedUsage, inputTokens)
	}

	b.add(tokenItem(ComponentInput, inputTokens, inputUnit, b.GroupRatio))
	if cacheMode {
		b.add(tokenItem(ComponentCacheRead, u.CacheTokens, inputUnit*r.Cache, b.GroupRatio))
	}
	if imageMode {
		b.add(tokenItem(ComponentImageInput, u.ImageOutputTokens, inputUnit*r.Image, b.GroupRatio))
	}
	if audioSeparate {
		b.add(tokenItem(ComponentAudioInput, u.AudioInputTokens, r.AudioInputPrice, b.GroupRatio))
	}

	b.add(tokenItem(ComponentCompletion, u.CompletionTokens, inputUnit*r.Completion, b.GroupRatio))

	if u.WebSearchCalls > 0 {
		b.add(callItem(ComponentWebSearch, u.WebSearchCalls, r.WebSearchPrice, b.GroupRatio))
	}
	if u.FileSearchCalls > 0 {
		b.add(callItem(ComponentFileSearch, u.FileSearchCalls, r.FileSearchPrice, b.GroupRatio))
	}
	return nil
}

// evaluateAudio handles models with a distinct audio token price path:
// audio input at audioRatio and audio completion at
// audioRatio*audioCompletionRatio, both relative to the input unit
// price.
func evaluateAudio(b *Breakdown, req Request) error {
	u, r := req.Usage, req.Ratios
	inputUnit := r.Model * baselineScale

	inputTokens := u.InputTokens
	cacheMode := u.CacheTokens > 0
	if cacheMode {
		inputTokens -= u.CacheTokens
	}
	if inputTokens < 0 {
		return fmt.Errorf("%w: residual input pool %d", ErrOversizedUsage, inputTokens)
	}

	b.add(tokenItem(ComponentInput, inputTokens, inputUnit, b.GroupRatio))
	if cacheMode {
		b.add(tokenItem(ComponentCacheRead, u.CacheTokens, inputUnit*r.Cache, b.GroupRatio))
	}
	b.add(tokenItem(ComponentCompletion, u.CompletionTokens, inputUnit*r.Completion, b.GroupRatio))

	b.add(tokenItem(ComponentAudioInput, u.AudioInputTokens, inputUnit*r.Audio, b.GroupRatio))
	b.add(tokenItem(ComponentAudioCompletion, u.AudioCompletionTokens, inputUnit*r.Audio*r.AudioCompletion, b.GroupRatio))
	return nil
}

// evaluateClaude stacks cache reads and cache writes as independent
// additive line items: input tokens already exclude cached tokens, and
// both cache components are billed on top.
func evaluateClaude(b *Breakdown, req Request) {
	u, r := req.Usage, req.Ratios
	inputUnit := r.Model * baselineScale

	b.add(tokenItem(ComponentInput, u.InputTokens, inputUnit, b.GroupRatio))
	if u.CacheTokens > 0 {
		b.add(tokenItem(ComponentCacheRead, u.CacheTokens, inputUnit*r.Cache, b.GroupRatio))
	}
	if u.CacheCreationTokens > 0 {
		b.add(tokenItem(ComponentCacheCreation, u.CacheCreationTokens, inputUnit*r.CacheCreation, b.GroupRatio))
	}
	b.add(tokenItem(ComponentCompletion, u.CompletionTokens, inputUnit*r.Completion, b.GroupRatio))
}

// tokenItem builds a line item billed per 1M tokens.
func tokenItem(component string, tokens int64, unitPrice, groupRatio float64) LineItem {
	return LineItem{
		Component: component,
		Quantity:  float64(tokens),
		UnitPrice: unitPrice,
		Subtotal:  float64(tokens) / tokensPerMillion * unitPrice * groupRatio,
	}
}

// callItem builds a line item billed per 1K calls.
func callItem(component string, calls int64, unitPrice, groupRatio float64) LineItem {
	return LineItem{
		Component: component,
		Quantity:  float64(calls),
		UnitPrice: unitPrice,
		Subtotal:  float64(calls) / callsPerThousand * unitPrice * groupRatio,
	}
}

func (b *Breakdown) add(item LineItem) {
	b.Items = append(b.Items, item)
	b.Total += item.Subtotal
}

func validate(req Request) error {
	counters := []struct {
		name  string
		value int64
	}{
		{"input_tokens", req.Usage.InputTokens},
		{"completion_tokens", req.Usage.CompletionTokens},
		{"cache_tokens", req.Usage.CacheTokens},
		{"cache_creation_tokens", req.Usage.CacheCreationTokens},
		{"image_output_tokens", req.Usage.ImageOutputTokens},
		{"audio_input_tokens", req.Usage.AudioInputTokens},
		{"audio_completion_tokens", req.Usage.AudioCompletionTokens},
		{"web_search_calls", req.Usage.WebSearchCalls},
		{"file_search_calls", req.Usage.FileSearchCalls},
	}
	for _, c := range counters {
		if c.value < 0 {
			return fmt.Errorf("%w: %s = %d", ErrNegativeUsage, c.name, c.value)
		}
	}

	ratios := []struct {
		name  string
		value float64
	}{
		{"model", req.Ratios.Model},
		{"completion", req.Ratios.Completion},
		{"cache", req.Ratios.Cache},
		{"cache_creation", req.Ratios.CacheCreation},
		{"image", req.Ratios.Image},
		{"audio", req.Ratios.Audio},
		{"audio_completion", req.Ratios.AudioCompletion},
		{"audio_input_price", req.Ratios.AudioInputPrice},
		{"web_search_price", req.Ratios.WebSearchPrice},
		{"file_search_price", req.Ratios.FileSearchPrice},
		{"group_ratio", req.GroupRatio},
	}
	for _, r := range ratios {
		if r.value < 0 {
			return fmt.Errorf("%w: %s = %v", ErrNegativeRatio, r.name, r.value)
		}
	}

	if req.ModelPrice != nil && *req.ModelPrice < 0 {
		return fmt.Errorf("%w: model_price = %v", ErrNegativeRatio, *req.ModelPrice)
	}
	if req.UserGroupRatio != nil && isValidGroupRatio(*req.UserGroupRatio) && *req.UserGroupRatio < 0 {
		return fmt.Errorf("%w: user_group_ratio = %v", ErrNegativeRatio, *req.UserGroupRatio)
	}

	return nil
}
