package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimNonAlnum(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"? Test-string 2!", "Test-string 2"},
		{"John", "John"},
		{"  Mary  ", "Mary"},
		{"--", ""},
		{"", ""},
		{"(Ødegård)", "Ødegård"},
		{"3rd", "3rd"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimNonAlnum(tt.in), "TrimNonAlnum(%q)", tt.in)
	}
}

func TestStripSymbols(t *testing.T) {
	got := StripSymbols([]string{"*Ann*", " Bea.", "Cleo"})
	assert.Equal(t, []string{"Ann", "Bea", "Cleo"}, got)
}

func TestDropBlanks(t *testing.T) {
	names := []string{"Ann", "", "...", "Bea", "skipme"}
	got := DropBlanks(names, "skipme")
	assert.Equal(t, []string{"Ann", "Bea"}, got)
}

func TestClean(t *testing.T) {
	raw := []string{"?Ann!", "  ", "---", "Bea,"}
	assert.Equal(t, []string{"Ann", "Bea"}, Clean(raw))
}
