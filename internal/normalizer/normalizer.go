package normalizer

import "strings"

// Normalize canonicalizes a domain or brand string for comparison.
// It never fails: blank input yields "".
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "www.")

	s = strings.TrimRight(s, "/")
	return strings.TrimSpace(s)
}

// SameEntity reports whether two domains or brands refer to the same entity
func SameEntity(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}
