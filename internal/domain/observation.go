package domain

import "strings"

// UnknownCategory labels observations that arrive without a symbology.
const UnknownCategory = "UNKNOWN"

// Observation is one decoded scan: the payload is the identity key, the
// category is the human-readable symbology label.
type Observation struct {
	Payload  string
	Category string
}

// NormalizeCategory trims and upper-cases a symbology label so that
// "code128" and "CODE128 " count as the same category.
func NormalizeCategory(category string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(category))
	if trimmed == "" {
		return UnknownCategory
	}

	return trimmed
}
