// Package htmlsanitize cleans user-supplied rich text before storage.
// Prompt content may carry formatting; everything else is plain text.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// ugc allows the usual formatting subset (links, lists, emphasis)
	// and strips scripts, event handlers, and iframes.
	ugc = bluemonday.UGCPolicy()

	// strict strips all markup, leaving text content only.
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans rich text for storage, keeping safe formatting.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// StripTags removes all markup. Used for titles, names, and other
// fields that must stay plain text.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(strict.Sanitize(s))
}
