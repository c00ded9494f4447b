// Package pricing computes the billed cost of a single gateway call
// from usage counters and a ratio set.
//
// # Pricing model
//
// All prices derive from a baseline unit price:
//
//	inputUnitPrice = modelRatio * 2.0
//
// so a model ratio of 1.0 means $2 per 1M input tokens ($0.002 per 1K).
// The 2.0 scaling is a billing-record compatibility constant and must
// not change. Component prices multiply further ratios onto the input
// unit price (completion, cache, image, audio), and the resolved group
// ratio scales every subtotal.
//
// A flat model price, when set, replaces all token arithmetic:
// the call costs modelPrice * groupRatio regardless of usage.
//
// # Variants
//
// Four evaluation variants mirror the gateway's model families:
//
//   - VariantText: token pricing with cache-read shaping and optional
//     separately-priced audio input, per-call web/file search billing.
//   - VariantImage: like text, but image output tokens reshape the
//     input pool instead of cache tokens when present.
//   - VariantAudio: text pricing plus an audio path priced at
//     audioRatio and audioRatio*audioCompletionRatio.
//   - VariantClaude: cache reads and cache writes are independent
//     additive line items on top of the full input count.
//
// In the text and image variants the cache, image, and separate-audio
// adjustments are alternative shapes of the same effective input pool,
// not stackable; the Claude variant is the only one that stacks cache
// components. Breakdown line items record quantity, unit price, and
// subtotal for every active component so the total is reconstructable
// from the inputs alone.
package pricing
