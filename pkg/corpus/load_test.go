package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReader(t *testing.T) {
	input := "John\r\nJoey\n\n\tJoseph\t\nJohn\n"
	names, err := FromReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"John", "Joey", "Joseph", "John"}, names,
		"order and duplicates must survive loading")
}

func TestFromReaderLatin1Fallback(t *testing.T) {
	// "Café" and "Åse" in ISO 8859-1; 0xE9 and 0xC5 are invalid UTF-8 here.
	input := []byte{'C', 'a', 'f', 0xE9, '\n', 0xC5, 's', 'e', '\n'}
	names, err := FromReader(strings.NewReader(string(input)))
	require.NoError(t, err)
	assert.Equal(t, []string{"Café", "Åse"}, names)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "names.txt")
	require.NoError(t, os.WriteFile(path, []byte("Ann\nBea\n"), 0644))

	names, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bea"}, names)

	// The extension is implied when missing.
	names, err = FromFile(filepath.Join(dir, "names"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bea"}, names)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
