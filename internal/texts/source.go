// Package texts supplies the practice sentences.
package texts

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
)

// ErrNoSentences is returned when the configured files hold no usable line.
var ErrNoSentences = errors.New("no practice sentences found")

// DefaultSentences is used when no sentence file exists yet.
var DefaultSentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"A black cat crossed the busy street.",
	"The old oak tree stood tall in the forest.",
	"Sally baked a delicious apple pie for dessert.",
	"The sun set behind the mountains in a blaze of colors.",
	"A gentle breeze rustled the leaves in the garden.",
	"The waves crashed against the rocky shore.",
	"The smell of fresh coffee filled the room.",
	"The sound of laughter echoed through the hallway.",
	"The stars twinkled in the night sky above.",
}

// Load reads one sentence per non-empty line from every file matching
// pattern. The pattern may be a plain path or a doublestar glob; a leading
// "~/" is expanded to the home directory. Returns os.ErrNotExist (wrapped)
// when nothing matches.
func Load(pattern string) ([]string, error) {
	paths, err := resolve(ExpandHome(pattern))
	if err != nil {
		return nil, err
	}
	var sentences []string
	for _, path := range paths {
		lines, err := readLines(path)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, lines...)
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSentences, pattern)
	}
	return sentences, nil
}

// LoadOrDefault is Load that falls back to DefaultSentences when no file
// matches pattern.
func LoadOrDefault(pattern string) ([]string, bool, error) {
	sentences, err := Load(pattern)
	if errors.Is(err, os.ErrNotExist) {
		return append([]string(nil), DefaultSentences...), true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return sentences, false, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, path[2:])
}

func resolve(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("texts path is empty")
	}
	if !hasMeta(pattern) {
		if _, err := os.Stat(pattern); err != nil {
			return nil, err
		}
		return []string{pattern}, nil
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid texts pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %s: %w", pattern, os.ErrNotExist)
	}
	sort.Strings(matches)
	return matches, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return Clean(lines), nil
}

// Clean trims lines, strips list numbering and drops empty entries.
func Clean(lines []string) []string {
	cleaned := lo.Map(lines, func(line string, _ int) string {
		return stripNumbering(strings.TrimSpace(line))
	})
	return lo.Filter(cleaned, func(line string, _ int) bool {
		return line != ""
	})
}

func stripNumbering(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i+1 >= len(line) || (line[i] != '.' && line[i] != ')') || line[i+1] != ' ' {
		return strings.TrimLeft(line, "-* ")
	}
	return strings.TrimSpace(line[i+1:])
}
