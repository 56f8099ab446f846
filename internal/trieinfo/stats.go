// Package trieinfo computes structural statistics over a Compressed
// Trie, adapted from the teacher's internal/utils/analysis.go TrieStats,
// generalized from the teacher's trigram/radix tries to spec §4.2's CT.
package trieinfo

import "fts-radix/internal/trie"

// Stats summarizes a trie's shape, useful for the §8 structural
// invariants (child disjointness, uniqueness) and for the stats explorer
// (cmd/ftsstat).
type Stats struct {
	Nodes         int
	ExternalNodes int
	InternalNodes int
	MaxDepth      int
	AvgDepth      float64
	TotalRank     uint64
}

// Compute walks t and aggregates Stats.
func Compute(t *trie.Trie) Stats {
	var s Stats
	var totalDepth int

	t.Walk(func(depth int, info trie.NodeInfo) {
		s.Nodes++
		totalDepth += depth
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		if info.External {
			s.ExternalNodes++
			s.TotalRank += info.Rank
		} else {
			s.InternalNodes++
		}
	})

	if s.Nodes > 0 {
		s.AvgDepth = float64(totalDepth) / float64(s.Nodes)
	}
	return s
}
