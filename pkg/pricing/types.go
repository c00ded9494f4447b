package pricing

// Variant selects the evaluation path for a model family.
type Variant string

const (
	// VariantText is plain token pricing.
	VariantText Variant = "text"
	// VariantImage prices image output tokens as reshaped input.
	VariantImage Variant = "image"
	// VariantAudio prices audio tokens on a separate ratio path.
	VariantAudio Variant = "audio"
	// VariantClaude stacks cache read and cache creation line items.
	VariantClaude Variant = "claude"
)

// Ratios holds the multiplicative pricing factors for a model.
// A ratio of 1.0 is the baseline price. Zero values are valid and mean
// the component is free (an unset completion ratio deliberately prices
// completion at zero, matching historical billing records).
type Ratios struct {
	// Model is the base price ratio. inputUnitPrice = Model * 2.0.
	Model float64 `yaml:"model"`

	// Completion scales the input unit price for completion tokens.
	Completion float64 `yaml:"completion"`

	// Cache scales the input unit price for cache-read tokens.
	Cache float64 `yaml:"cache"`

	// CacheCreation scales the input unit price for cache-write tokens
	// (Claude variant only).
	CacheCreation float64 `yaml:"cache_creation"`

	// Image scales the input unit price for image output tokens.
	Image float64 `yaml:"image"`

	// Audio scales the input unit price for audio input tokens
	// (audio variant).
	Audio float64 `yaml:"audio"`

	// AudioCompletion further scales the audio price for audio
	// completion tokens.
	AudioCompletion float64 `yaml:"audio_completion"`

	// AudioInputPrice is a direct price in currency per 1M audio input
	// tokens, used by the text variant when audio input is billed
	// separately from the token pool.
	AudioInputPrice float64 `yaml:"audio_input_price"`

	// WebSearchPrice is the currency price per 1K web search calls.
	WebSearchPrice float64 `yaml:"web_search_price"`

	// FileSearchPrice is the currency price per 1K file search calls.
	FileSearchPrice float64 `yaml:"file_search_price"`
}

// Usage holds the per-call measurement counters.
// All counters are non-negative; the evaluator rejects negative values.
type Usage struct {
	InputTokens           int64 `yaml:"input_tokens"`
	CompletionTokens      int64 `yaml:"completion_tokens"`
	CacheTokens           int64 `yaml:"cache_tokens"`
	CacheCreationTokens   int64 `yaml:"cache_creation_tokens"`
	ImageOutputTokens     int64 `yaml:"image_output_tokens"`
	AudioInputTokens      int64 `yaml:"audio_input_tokens"`
	AudioCompletionTokens int64 `yaml:"audio_completion_tokens"`
	WebSearchCalls        int64 `yaml:"web_search_calls"`
	FileSearchCalls       int64 `yaml:"file_search_calls"`
}

// Request is the full input to one evaluation.
type Request struct {
	Variant Variant `yaml:"variant"`
	Usage   Usage   `yaml:"usage"`
	Ratios  Ratios  `yaml:"ratios"`

	// ModelPrice is a flat per-call price override. When set it
	// replaces all token arithmetic. The gateway API reports -1 for
	// "not set"; use ParseModelPrice at that boundary.
	ModelPrice *float64 `yaml:"model_price"`

	// GroupRatio is the discount multiplier of the billing group.
	GroupRatio float64 `yaml:"group_ratio"`

	// UserGroupRatio is an optional per-user override of GroupRatio.
	UserGroupRatio *float64 `yaml:"user_group_ratio"`
}

// LineItem is one component of a cost breakdown.
type LineItem struct {
	// Component names the billed component (input, completion, ...).
	Component string `json:"component"`

	// Quantity is the token count, or call count for per-call
	// components.
	Quantity float64 `json:"quantity"`

	// UnitPrice is the currency price per 1M tokens (or per 1K calls
	// for search components) before the group ratio.
	UnitPrice float64 `json:"unit_price"`

	// Subtotal is the currency cost of this component with the group
	// ratio applied.
	Subtotal float64 `json:"subtotal"`
}

// Breakdown is the result of one evaluation. It is a fresh value per
// call and is never mutated afterwards.
type Breakdown struct {
	Variant Variant `json:"variant"`

	// GroupRatio is the resolved discount multiplier used in every
	// subtotal.
	GroupRatio float64 `json:"group_ratio"`

	// RateSource records whether GroupRatio came from the group or a
	// per-user override. Informational only.
	RateSource RateSource `json:"rate_source"`

	// Items are the ordered component line items.
	Items []LineItem `json:"items"`

	// Total is the currency cost of the call.
	Total float64 `json:"total"`
}

// Component names used in breakdown line items.
const (
	ComponentFlatPrice       = "flat price"
	ComponentInput           = "input"
	ComponentCacheRead       = "cache read"
	ComponentCacheCreation   = "cache creation"
	ComponentImageInput      = "image input"
	ComponentCompletion      = "completion"
	ComponentAudioInput      = "audio input"
	ComponentAudioCompletion = "audio completion"
	ComponentWebSearch       = "web search"
	ComponentFileSearch      = "file search"
)
