package text

import (
	"bufio"
	"os"
	"strings"
)

// defaultStopWords mirrors the teacher's inline stop-word table and the
// original Python's stop_words.txt contents; NewStopWords builds from it,
// while LoadStopWords reads a list from a file instead.
var defaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by",
	"for", "if", "in", "into", "is", "it", "no", "not", "of", "on", "or",
	"such", "that", "the", "their", "then", "there", "these", "they",
	"this", "to", "was", "were", "will", "with",
	"i", "me", "my", "mine", "we", "us", "our", "ours",
	"you", "your", "yours",
	"he", "him", "his", "she", "her", "hers",
	"himself", "herself",
}

// StopWords is the stop-word filter collaborator of spec §6. Lookups are
// exact matches against the lowercased list, so callers are expected to
// have already lowercased.
type StopWords struct {
	set map[string]struct{}
}

// NewStopWords builds a filter from the built-in default list.
func NewStopWords() *StopWords {
	return &StopWords{set: toSet(defaultStopWords)}
}

// LoadStopWords reads one word per line from path, skipping blank lines
// and lines starting with "#", matching the original's stop_words.txt
// loading convention.
func LoadStopWords(path string) (*StopWords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := make([]string, 0, 128)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &StopWords{set: toSet(words)}, nil
}

func toSet(words []string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// IsStopWord reports whether word should be filtered out.
func (sw *StopWords) IsStopWord(word string) bool {
	_, ok := sw.set[word]
	return ok
}
