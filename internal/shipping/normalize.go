package shipping

import "strings"

// NormalizeLocation returns the canonical comparison key for a province or
// city name: trimmed and lower-cased. Blank input yields the empty string.
// Every province/city comparison in this package goes through it.
func NormalizeLocation(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
