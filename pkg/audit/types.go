package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Record kinds.
const (
	KindCost = "cost"
	KindTier = "tier"
)

// Record is one persisted pricing computation.
type Record struct {
	// ID is the record UUID.
	ID string `json:"id"`

	// CreatedAt is when the computation was recorded (UTC).
	CreatedAt time.Time `json:"created_at"`

	// Kind is the record kind: cost or tier.
	Kind string `json:"kind"`

	// Summary is a one-line human-readable description.
	Summary string `json:"summary"`

	// Total is the headline figure: the evaluation total for cost
	// records, the break-even ratio for tier records.
	Total float64 `json:"total"`

	// Detail is the full computation result as JSON.
	Detail json.RawMessage `json:"detail"`
}

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("audit: record not found")

// ListOptions filters and limits List queries.
type ListOptions struct {
	// Kind filters by record kind when non-empty.
	Kind string

	// Limit caps the number of returned records. Zero means no limit.
	Limit int

	// Since excludes records created before the given time when
	// non-zero.
	Since time.Time
}

// Storage persists audit records.
type Storage interface {
	// Save stores a record.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns records matching the options, newest first.
	List(ctx context.Context, opts ListOptions) ([]*Record, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)

	// DeleteOlderThan removes records created before the cutoff and
	// returns how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldest removes the n oldest records and returns how many
	// were deleted.
	DeleteOldest(ctx context.Context, n int64) (int64, error)

	// Close releases storage resources.
	Close() error
}
