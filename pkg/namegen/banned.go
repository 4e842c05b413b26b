package namegen

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// The banned-word registry is process-wide and independent of any NameSet:
// empty at startup, mutated only through the functions below, and read by
// every MakeName call. Words are stored case-folded.
var bannedState = struct {
	mu    sync.RWMutex
	words map[string]struct{}
}{words: make(map[string]struct{})}

// fold normalizes a string for caseless matching. A cases.Caser carries
// internal state, so each call builds its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// SetBannedWords replaces the registry with the given words.
// Matching is not case sensitive.
func SetBannedWords(words []string) {
	next := make(map[string]struct{}, len(words))
	for _, w := range words {
		next[fold(w)] = struct{}{}
	}
	bannedState.mu.Lock()
	bannedState.words = next
	bannedState.mu.Unlock()
}

// AddBannedWords adds the given words to the registry.
// Matching is not case sensitive.
func AddBannedWords(words ...string) {
	bannedState.mu.Lock()
	for _, w := range words {
		bannedState.words[fold(w)] = struct{}{}
	}
	bannedState.mu.Unlock()
}

// BannedWords returns a sorted copy of the registry, in case-folded form.
func BannedWords() []string {
	bannedState.mu.RLock()
	out := make([]string, 0, len(bannedState.words))
	for w := range bannedState.words {
		out = append(out, w)
	}
	bannedState.mu.RUnlock()
	sort.Strings(out)
	return out
}

// IsClean reports whether the name contains no banned word as a
// case-insensitive substring. MakeName rejects candidates that fail it.
func IsClean(name string) bool {
	folded := fold(name)
	bannedState.mu.RLock()
	defer bannedState.mu.RUnlock()
	for w := range bannedState.words {
		if strings.Contains(folded, w) {
			return false
		}
	}
	return true
}
