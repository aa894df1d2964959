// Package slug derives URL-safe identifiers from titles.
package slug

import (
	"regexp"
	"strings"
)

var separators = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases title, collapses every run of characters outside [a-z0-9]
// into a single hyphen and trims hyphens from both ends.
// Make(Make(s)) == Make(s) for every s.
func Make(title string) string {
	s := separators.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}
