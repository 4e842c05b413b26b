package corpus

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// pkgLogger receives the Latin-1 fallback warning. By default all logs are
// discarded; SetLogger enables them.
var pkgLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger sets the logger used by the loading functions. By default, all
// logs are discarded.
func SetLogger(logger *slog.Logger) {
	if logger != nil {
		pkgLogger = logger
	}
}

// FromReader reads training names from r, one per line, trimming newline,
// carriage return, and tab characters from both ends of each line and
// dropping lines that end up empty. Input that is not valid UTF-8 is
// re-decoded as Latin-1 (ISO 8859-1), with a warning; spreadsheet exports
// are the usual source of such files.
func FromReader(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read training text: %w", err)
	}
	if !utf8.Valid(data) {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode training text as Latin-1: %w", err)
		}
		pkgLogger.Warn("Training text is not valid UTF-8, decoded as Latin-1")
	}

	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.Trim(line, "\r\n\t")
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names, nil
}

// FromFile loads training names from the file at path, appending a ".txt"
// extension when the path has none.
func FromFile(path string) ([]string, error) {
	if filepath.Ext(path) == "" {
		path += ".txt"
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open training file: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	return FromReader(f)
}
