package settings

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// DefaultEnvPrefix is the prefix used by NewEnvSource when none is
// given.
const DefaultEnvPrefix = "ABACUS_SETTING_"

// EnvSource loads settings from environment variables.
//
// Keys are converted to uppercase environment variable names with the
// configured prefix prepended.
//
// Example:
//   - Key: "quota_per_unit"
//   - Env var: "ABACUS_SETTING_QUOTA_PER_UNIT"
type EnvSource struct {
	Prefix string
}

// NewEnvSource creates an environment variable settings source with the
// default prefix.
func NewEnvSource() *EnvSource {
	return &EnvSource{Prefix: DefaultEnvPrefix}
}

// Get retrieves a setting from an environment variable.
// An unset or empty variable reads as not found.
func (s *EnvSource) Get(ctx context.Context, key string) (string, error) {
	envVar := s.keyToEnvVar(key)

	value := os.Getenv(envVar)
	if value == "" {
		return "", fmt.Errorf("%w: %s (env var: %s)", ErrNotFound, key, envVar)
	}
	return value, nil
}

// List returns the keys of all environment variables carrying the
// configured prefix, converted back to settings-key form.
func (s *EnvSource) List(ctx context.Context) ([]string, error) {
	var keys []string
	for _, entry := range os.Environ() {
		name, _, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, s.Prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, s.Prefix))
		keys = append(keys, key)
	}
	return keys, nil
}

// Name returns the source name.
func (s *EnvSource) Name() string {
	return "env"
}

// Supports reports whether the corresponding environment variable is
// set and non-empty.
func (s *EnvSource) Supports(key string) bool {
	return os.Getenv(s.keyToEnvVar(key)) != ""
}

func (s *EnvSource) keyToEnvVar(key string) string {
	converted := strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	return s.Prefix + converted
}
