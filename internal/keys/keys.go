package keys

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Normalize canonicalizes a display string into a lookup key: trimmed,
// lowercased, internal whitespace runs collapsed to a single space.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	return whitespace.ReplaceAllString(s, " ")
}

// EventKey and NameKey are distinct namespaces computed the same way.
func EventKey(name string) string { return Normalize(name) }

func NameKey(name string) string { return Normalize(name) }
