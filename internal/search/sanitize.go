package search

import "regexp"

var disallowed = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Sanitize removes every character outside [A-Za-z0-9_]
func Sanitize(input string) string {
	return disallowed.ReplaceAllString(input, "")
}

// SanitizeOptional sanitizes a filter value, keeping absence as nil.
// A present value stays present even when sanitizing empties it.
func SanitizeOptional(input *string) *string {
	if input == nil {
		return nil
	}
	s := Sanitize(*input)
	return &s
}
