// Package corpus loads and holds the word lists passphrase generation
// draws from. A corpus is loaded once, outside the generation hot path,
// and is immutable afterward.
package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Corpus is an ordered sequence of distinct, non-empty words. Read-only
// after construction; safe for concurrent use.
type Corpus struct {
	words []string
}

// New builds a corpus from raw words: blanks are dropped, surrounding
// whitespace trimmed, duplicates removed keeping first occurrence.
func New(words []string) (*Corpus, error) {
	seen := make(map[string]struct{}, len(words))
	clean := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		clean = append(clean, w)
	}
	if len(clean) == 0 {
		return nil, errors.New("corpus contains no usable words")
	}
	return &Corpus{words: clean}, nil
}

// Len returns the number of words.
func (c *Corpus) Len() int { return len(c.words) }

// Word returns the word at position i.
func (c *Corpus) Word(i int) string { return c.words[i] }

// Words returns a copy of the word sequence.
func (c *Corpus) Words() []string {
	out := make([]string, len(c.words))
	copy(out, c.words)
	return out
}

// Filter returns a new corpus holding only the words keep accepts,
// preserving order. The receiver is never modified.
func (c *Corpus) Filter(keep func(string) bool) *Corpus {
	out := make([]string, 0, len(c.words))
	for _, w := range c.words {
		if keep(w) {
			out = append(out, w)
		}
	}
	return &Corpus{words: out}
}

// Load reads a word list from path. Packed lists (see Pack) are detected
// by their magic header; anything else is treated as newline-delimited
// text. Lines may carry dice-roll prefixes separated by a tab, as the EFF
// lists do; only the final field is kept.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	if IsPacked(data) {
		data, err = Unpack(data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack word list %s: %w", path, err)
		}
	}
	return parseWords(data, path)
}

func parseWords(data []byte, path string) (*Corpus, error) {
	lines := bytes.Split(data, []byte("\n"))
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		text := strings.TrimSpace(string(line))
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if tab := strings.LastIndexByte(text, '\t'); tab >= 0 {
			text = text[tab+1:]
		}
		words = append(words, text)
	}
	c, err := New(words)
	if err != nil {
		return nil, fmt.Errorf("word list %s: %w", path, err)
	}
	return c, nil
}

// Discover loads and merges every word list under root matched by the
// glob patterns (doublestar syntax, e.g. "lists/**/*.txt"). Matches are
// visited in sorted order so the merged corpus is stable across runs.
func Discover(root string, patterns []string) (*Corpus, error) {
	if len(patterns) == 0 {
		patterns = []string{"**/*.txt", "**/*.words.lz4"}
	}

	matched := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		unix := filepath.ToSlash(rel)
		for _, pat := range patterns {
			if ok, matchErr := doublestar.Match(pat, unix); matchErr == nil && ok {
				matched[path] = struct{}{}
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan word list directory %s: %w", root, err)
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("no word lists under %s match %v", root, patterns)
	}

	paths := make([]string, 0, len(matched))
	for path := range matched {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var merged []string
	for _, path := range paths {
		c, loadErr := Load(path)
		if loadErr != nil {
			return nil, loadErr
		}
		merged = append(merged, c.words...)
	}
	return New(merged)
}
