package settings

import (
	"context"
	"errors"
)

// Well-known settings keys.
const (
	// KeyQuotaPerUnit is the number of quota units per one currency unit,
	// stored as a numeric string (e.g. "500000").
	KeyQuotaPerUnit = "quota_per_unit"

	// KeyDisplayInCurrency controls whether quota values are rendered as
	// currency amounts, stored as the string "true" or "false".
	KeyDisplayInCurrency = "display_in_currency"
)

// ErrNotFound is returned when a key does not exist in the source.
var ErrNotFound = errors.New("settings: key not found")

// Source retrieves settings values from a backend.
//
// Implementations include environment variables, YAML files, and the
// gateway's SQLite options table. All values are strings as stored;
// callers parse them through boundary helpers such as LoadExchange.
type Source interface {
	// Get retrieves a value by key. Returns ErrNotFound (possibly
	// wrapped) when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// List returns all keys available from this source.
	List(ctx context.Context) ([]string, error)

	// Name returns the source name (env, file, sqlite, static).
	Name() string

	// Supports indicates if this source can serve the given key without
	// performing a lookup.
	Supports(key string) bool
}

// RefreshableSource can reload its values without restart.
//
// Implemented by sources with a mutable backing store, such as the file
// source, which reloads when the watched file changes.
type RefreshableSource interface {
	Source

	// Refresh reloads all values from the backend.
	Refresh(ctx context.Context) error
}
