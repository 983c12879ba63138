// Package sanitize strips markup-like substrings from free-text fields
// before they are stored or returned by the API service.
package sanitize

import "regexp"

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	identPattern = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
)

// Strip removes every angle-bracket-delimited tag-like substring from s.
// The substitution is a single non-recursive pass and performs no entity
// escaping, so Strip is idempotent.
func Strip(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Ident removes every character outside [A-Za-z0-9_-], the character set
// allowed for event type and routing hint fields.
func Ident(s string) string {
	return identPattern.ReplaceAllString(s, "")
}
