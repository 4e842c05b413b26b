package corpus

import (
	"strings"
	"unicode"
)

// TrimNonAlnum strips non-alphanumeric runes from both ends of s. Interior
// punctuation stays, so "? Test-string 2!" becomes "Test-string 2".
func TrimNonAlnum(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// StripSymbols maps TrimNonAlnum over names, returning a new slice.
func StripSymbols(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = TrimNonAlnum(name)
	}
	return out
}

// DropBlanks removes names that are empty or contain no alphanumeric runes
// at all, plus any names listed in extra.
func DropBlanks(names []string, extra ...string) []string {
	drop := make(map[string]struct{}, len(extra))
	for _, name := range extra {
		drop[name] = struct{}{}
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if TrimNonAlnum(name) == "" {
			continue
		}
		if _, skip := drop[name]; skip {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Clean strips leading and trailing symbols from every name and drops the
// ones with nothing left. This is the usual preparation for raw file input.
func Clean(names []string) []string {
	return DropBlanks(StripSymbols(names))
}
