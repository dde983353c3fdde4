// Package normalize holds the small string-cleanup helpers applied to
// user-supplied identity fields before they are stored.
package normalize

import "strings"

// Name trims surrounding whitespace and collapses internal runs of
// whitespace to single spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Email lowercases and trims an address. No syntactic validation: the
// identity provider already vetted it.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
