package wordlist

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"strings"
)

//go:embed default.lst
var defaultList string

// DefaultName is how the embedded list is referred to in logs.
const DefaultName = "embedded"

// Parse splits raw into candidate secrets. CRLF line endings are normalized,
// lines made only of whitespace are dropped, and kept lines are returned
// verbatim in file order without deduplication.
func Parse(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Load reads the wordlist at path. An empty path selects the embedded list.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(ErrNotFound, err)
		}
		return nil, errors.Join(ErrRead, err)
	}
	return Parse(string(raw)), nil
}

// Default returns the embedded list of commonly used secrets.
func Default() []string {
	return Parse(defaultList)
}

// Exists reports whether path names a readable regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
