package namegen

import "testing"

func TestRuneCount(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"", 0},
		{"John", 4},
		{"Åse", 3},
		{"名前", 2},
	}
	for _, tt := range tests {
		if got := RuneCount(tt.name); got != tt.want {
			t.Errorf("RuneCount(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSyllables(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"", 0},
		{"a", 1},
		{"John", 1},
		{"Mary", 2},
		{"O'Brien", 2},
		{"Jo-Ann", 2},
		{"7", 2},
		{"42", 2},
		{"B-17", 4},
		{"antidisestablishmentarianism", 10},
		{"The quick brown fox jumped over the lazy dog.", 12},
	}
	for _, tt := range tests {
		if got := Syllables(tt.name); got != tt.want {
			t.Errorf("Syllables(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
