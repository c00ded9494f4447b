package settings

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// StaticSource serves settings from an in-memory map.
//
// It backs configuration-file defaults (when no external store is
// configured) and tests. Values can be replaced at runtime; reads
// always observe the latest Set.
type StaticSource struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStaticSource creates a static source seeded with the given values.
// The map is copied; the caller's map is not retained.
func NewStaticSource(values map[string]string) *StaticSource {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &StaticSource{values: copied}
}

// NewExchangeSource creates a static source holding only the exchange
// keys. Used when the exchange rate comes from the local config file
// rather than a live store.
func NewExchangeSource(quotaPerUnit float64, displayInCurrency bool) *StaticSource {
	return NewStaticSource(map[string]string{
		KeyQuotaPerUnit:      strconv.FormatFloat(quotaPerUnit, 'f', -1, 64),
		KeyDisplayInCurrency: strconv.FormatBool(displayInCurrency),
	})
}

// Get retrieves a value by key.
func (s *StaticSource) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v, nil
}

// Set stores a value, replacing any existing one.
func (s *StaticSource) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Delete removes a key.
func (s *StaticSource) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// List returns all keys in sorted order.
func (s *StaticSource) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Name returns the source name.
func (s *StaticSource) Name() string {
	return "static"
}

// Supports reports whether the key is currently present.
func (s *StaticSource) Supports(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}
