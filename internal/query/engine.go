// Package query implements the Query Engine of spec §4.3: the ANY and
// ALL retrieval modes over a Trie + Posting-List Pool.
package query

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"fts-radix/internal/plp"
	"fts-radix/internal/text"
	"fts-radix/internal/trie"
)

// ErrDocumentUnavailable is returned when ALL-mode rescoring cannot fetch
// a document's text (spec §7); the query fails outright rather than
// partial-ranking.
var ErrDocumentUnavailable = errors.New("query: document unavailable for rescoring")

// TextSource is the external collaborator (spec §6) that resolves a DocId
// to its plain text, used only by ALL-mode rescoring.
type TextSource interface {
	Get(ctx context.Context, docID string) (string, error)
}

// Result is one ranked document in a query response.
type Result struct {
	DocID string
	Score uint64
}

// Engine answers ANY/ALL queries over a trie and its pool.
type Engine struct {
	trie       *trie.Trie
	pool       *plp.Pool
	pipeline   *text.Pipeline
	textSource TextSource
}

// New builds a query engine. pipeline must be the same tokenizer/stop-word
// pipeline used at index time, since ALL-mode rescoring re-tokenizes
// document text and must normalize it identically (spec §6).
func New(t *trie.Trie, p *plp.Pool, pipeline *text.Pipeline, ts TextSource) *Engine {
	return &Engine{trie: t, pool: p, pipeline: pipeline, textSource: ts}
}

// Any implements mode ANY (spec §4.3): union of postings across all query
// words, scored by summing the rank accrued by each contributing word.
// Ties are broken by the order in which a document was first encountered
// while accumulating scores.
func (e *Engine) Any(words []string) ([]Result, error) {
	scores := make(map[string]uint64)
	var order []string

	for _, w := range words {
		h, rank, found := e.trie.Lookup(w)
		if !found {
			continue
		}
		docs, err := e.pool.At(h)
		if err != nil {
			return nil, fmt.Errorf("query: any: %w", err)
		}
		for _, d := range docs {
			if _, seen := scores[d]; !seen {
				order = append(order, d)
			}
			scores[d] += rank
		}
	}

	results := make([]Result, len(order))
	for i, d := range order {
		results[i] = Result{DocID: d, Score: scores[d]}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// All implements mode ALL (spec §4.3): intersection of postings across
// all query words, short-circuiting to empty on the first miss, then
// rescored by counting occurrences of the conjunction's max-rank word in
// each surviving document's text.
func (e *Engine) All(ctx context.Context, words []string) ([]Result, error) {
	var order []string // intersection, preserving first-word discovery order
	initialized := false

	var maxRank uint64
	var maxRankWord string

	for _, w := range words {
		h, rank, found := e.trie.Lookup(w)
		if !found {
			return nil, nil
		}
		docs, err := e.pool.At(h)
		if err != nil {
			return nil, fmt.Errorf("query: all: %w", err)
		}

		if rank > maxRank {
			maxRank = rank
			maxRankWord = w
		}

		present := toSet(docs)
		if !initialized {
			order = append([]string(nil), docs...)
			initialized = true
			continue
		}
		order = intersectInOrder(order, present)
	}

	if len(order) == 0 {
		return nil, nil
	}

	results := make([]Result, 0, len(order))
	for _, d := range order {
		txt, err := e.textSource.Get(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnavailable, d, err)
		}
		count := e.pipeline.Count(txt, maxRankWord)
		results = append(results, Result{DocID: d, Score: uint64(count)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

func toSet(docs []string) map[string]struct{} {
	s := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		s[d] = struct{}{}
	}
	return s
}

func intersectInOrder(order []string, present map[string]struct{}) []string {
	kept := order[:0:0]
	for _, d := range order {
		if _, ok := present[d]; ok {
			kept = append(kept, d)
		}
	}
	return kept
}
