package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"quotient-hq/abacus/pkg/pricing"
	"quotient-hq/abacus/pkg/pricing/tiers"
)

// Recorder writes pricing computations to audit storage.
type Recorder struct {
	storage Storage
	logger  *slog.Logger
}

// NewRecorder creates a recorder writing to the given storage.
func NewRecorder(storage Storage) *Recorder {
	return &Recorder{
		storage: storage,
		logger:  slog.Default().With("component", "audit.recorder"),
	}
}

// RecordBreakdown persists a cost breakdown and returns the record ID.
func (r *Recorder) RecordBreakdown(ctx context.Context, b *pricing.Breakdown) (string, error) {
	detail, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("failed to encode breakdown: %w", err)
	}

	rec := &Record{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Kind:      KindCost,
		Summary:   fmt.Sprintf("%s evaluation, %d components", b.Variant, len(b.Items)),
		Total:     b.Total,
		Detail:    detail,
	}

	if err := r.storage.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("failed to save cost record: %w", err)
	}

	r.logger.Debug("recorded cost breakdown",
		"id", rec.ID,
		"variant", b.Variant,
		"total", b.Total,
	)
	return rec.ID, nil
}

// RecordTierTable persists a tier calculation result and returns the
// record ID.
func (r *Recorder) RecordTierTable(ctx context.Context, res *tiers.Result) (string, error) {
	detail, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("failed to encode tier table: %w", err)
	}

	mode := "normal"
	if res.HighCost {
		mode = "high-cost"
	}

	rec := &Record{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Kind:      KindTier,
		Summary:   fmt.Sprintf("tier table, %d quotes, %s mode", len(res.Quotes), mode),
		Total:     res.BreakEvenRatio,
		Detail:    detail,
	}

	if err := r.storage.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("failed to save tier record: %w", err)
	}

	r.logger.Debug("recorded tier table",
		"id", rec.ID,
		"high_cost", res.HighCost,
	)
	return rec.ID, nil
}
