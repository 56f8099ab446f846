// Package text implements the Tokenizer + stop-word collaborator of
// spec §6: a deterministic, pure pipeline used identically at index time
// and at ALL-mode rescoring time (spec §4.3).
package text

import (
	"iter"
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// Tokenize splits content into runs of letters/digits, matching spec §3's
// Word definition (alphanumeric) before case-folding.
func Tokenize(content string) iter.Seq[string] {
	return func(yield func(string) bool) {
		lastSplit := -1
		for i, r := range content {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				if lastSplit == -1 {
					lastSplit = i
				}
				continue
			}
			if lastSplit != -1 {
				if !yield(content[lastSplit:i]) {
					return
				}
				lastSplit = -1
			}
		}
		if lastSplit != -1 {
			yield(content[lastSplit:])
		}
	}
}

// ToLower case-folds each token.
func ToLower(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for tok := range seq {
			if !yield(strings.ToLower(tok)) {
				return
			}
		}
	}
}

// FilterStopWords drops tokens present in sw.
func FilterStopWords(seq iter.Seq[string], sw *StopWords) iter.Seq[string] {
	return func(yield func(string) bool) {
		for tok := range seq {
			if sw.IsStopWord(tok) {
				continue
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// Stem reduces each token to its English stem (snowball, non-aggressive),
// folding inflected forms to the same indexed Word.
func Stem(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for tok := range seq {
			if !yield(snowballeng.Stem(tok, false)) {
				return
			}
		}
	}
}

// Pipeline bundles the stop-word list that Words needs; constructed once
// per session and shared between indexing and ALL-mode rescoring so both
// use the identical deterministic function, as spec §6 requires.
type Pipeline struct {
	StopWords *StopWords
}

// NewPipeline builds a pipeline over the given stop-word list.
func NewPipeline(sw *StopWords) *Pipeline {
	return &Pipeline{StopWords: sw}
}

// Words runs the full tokenize -> lowercase -> stop-word-filter -> stem
// pipeline over content and materializes the result, ready for indexing
// or for counting against in ALL-mode rescoring.
func (p *Pipeline) Words(content string) []string {
	seq := Tokenize(content)
	seq = ToLower(seq)
	seq = FilterStopWords(seq, p.StopWords)
	seq = Stem(seq)

	var words []string
	for w := range seq {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Count returns the number of occurrences of target (already normalized
// the same way Words normalizes tokens) among content's words.
func (p *Pipeline) Count(content, target string) int {
	n := 0
	for _, w := range p.Words(content) {
		if w == target {
			n++
		}
	}
	return n
}
