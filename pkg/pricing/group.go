package pricing

import "math"

// RateSource identifies where the resolved group ratio came from.
type RateSource string

const (
	// RateSourceGroup means the group-wide ratio applied.
	RateSourceGroup RateSource = "group"
	// RateSourceUser means a per-user override applied.
	RateSourceUser RateSource = "user"
)

// unsetRatio is the wire sentinel the gateway API uses for "no
// override". It survives here only for boundary parsing; resolved
// values never carry it.
const unsetRatio = -1

// ResolveGroupRatio decides between the group-wide ratio and an
// optional per-user override.
//
// The override wins iff it is present, finite, and not the wire
// sentinel. The returned source labels the outcome for display and has
// no effect on the numeric result.
func ResolveGroupRatio(groupRatio float64, userGroupRatio *float64) (float64, RateSource) {
	if userGroupRatio != nil && isValidGroupRatio(*userGroupRatio) {
		return *userGroupRatio, RateSourceUser
	}
	return groupRatio, RateSourceGroup
}

// ParseModelPrice converts a wire-format flat price into an optional
// value. The gateway reports -1 for "not set".
func ParseModelPrice(price float64) *float64 {
	if price == unsetRatio || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil
	}
	return &price
}

// ParseUserGroupRatio converts a wire-format user override into an
// optional value, mapping the -1 sentinel and non-finite input to
// "no override".
func ParseUserGroupRatio(ratio float64) *float64 {
	if !isValidGroupRatio(ratio) {
		return nil
	}
	return &ratio
}

func isValidGroupRatio(ratio float64) bool {
	return !math.IsNaN(ratio) && !math.IsInf(ratio, 0) && ratio != unsetRatio
}
