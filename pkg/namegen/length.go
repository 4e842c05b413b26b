package namegen

import (
	"strings"
	"unicode/utf8"
)

// LengthFunc measures a name, producing the scalar used both for ranking
// candidates and for the training-data mean that PreferAverage compares
// against. Any string property works as long as bigger means "longer".
type LengthFunc func(name string) float64

// RuneCount is the default LengthFunc. It measures a name by its number of
// runes, so multi-byte characters count once.
func RuneCount(name string) float64 {
	return float64(utf8.RuneCountInString(name))
}

const (
	vowelRunes     = "aeiouyAEIOUY"
	consonantRunes = "bcdfghjklmnpqrstvwxzBCDFGHJKLMNPQRSTVWXZ'"
)

// digitSyllables maps digits to the syllable count of their spoken form;
// seven and zero are two syllables.
var digitSyllables = map[rune]int{
	'1': 1, '2': 1, '3': 1, '4': 1, '5': 1,
	'6': 1, '7': 2, '8': 1, '9': 1, '0': 2,
}

// Syllables is a LengthFunc that estimates the number of syllables in a name
// by counting alternations between consonant and vowel runs. An apostrophe
// counts as a consonant, space and '-' start a new syllable, and digits add
// the syllables of their spoken form. It is an estimate: it scores
// "antidisestablishmentarianism" (12 syllables) as 10 and
// "The quick brown fox jumped over the lazy dog." (11) as 12.
func Syllables(name string) float64 {
	if name == "" {
		return 0
	}

	// A syllable is counted when it is finished. The section tracks where we
	// are within one syllable: 1 leading consonants, 2 vowels, 3 trailing
	// consonants.
	count := 0
	section := 1
	var last rune
	for _, r := range name {
		last = r
		switch {
		case digitSyllables[r] > 0:
			count += digitSyllables[r]
		case r == ' ' || r == '-':
			count++
			section = 1
		case strings.ContainsRune(vowelRunes, r):
			if section == 1 {
				section = 2
			} else if section == 3 {
				count++
				section = 2
			}
		case strings.ContainsRune(consonantRunes, r):
			if section == 2 {
				section = 3
			}
		}
	}

	// Close out the final syllable unless the last rune already did.
	if last != ' ' && last != '-' && digitSyllables[last] == 0 {
		count++
	}
	return float64(count)
}
