// Package trie implements the Compressed Trie (CT) of spec §4.2: a radix
// tree over word strings whose external nodes carry a handle into a
// Posting-List Pool and a search-time rank counter.
package trie

import (
	"errors"
	"strings"

	"fts-radix/internal/plp"
)

// ErrCorruptTrie is returned when a structural invariant is violated
// (spec §7): an i==0 divergence reached at a non-root node, most notably.
var ErrCorruptTrie = errors.New("trie: corrupt structure")

// ErrMalformedInput is returned for an empty word passed across the
// indexer boundary (spec §7); the trie itself assumes len(word) >= 1.
var ErrMalformedInput = errors.New("trie: empty word")

const noHandle = plp.Handle(-1)

// node is either internal (no payload, >=2 children once populated) or
// external (a Handle + rank, no children). The root is a special internal
// node whose key is the sentinel "*".
type node struct {
	key      string
	external bool
	handle   plp.Handle
	rank     uint64
	children []*node
}

func (n *node) terminatingChild() *node {
	for _, c := range n.children {
		if c.key == "*" {
			return c
		}
	}
	return nil
}

// Trie is the Compressed Trie. It allocates into the pool it is built
// over; insertion and the pool are therefore co-owned, matching spec §5's
// "trie and PLP co-owned by a single session object".
type Trie struct {
	root *node
	pool *plp.Pool
}

// New returns an empty trie allocating into pool.
func New(pool *plp.Pool) *Trie {
	return &Trie{root: &node{key: "*"}, pool: pool}
}

func lcp(a, b string) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

// InsertOrLocate ensures word is present in the trie, returning its
// external node's handle and whether the node was newly created. When
// created is true, the handle's pool slot already holds {doc} (the trie
// performed the allocation); the caller must still Add(doc) when created
// is false (spec §4.4).
func (t *Trie) InsertOrLocate(word, doc string) (plp.Handle, bool, error) {
	if word == "" {
		return 0, false, ErrMalformedInput
	}
	return t.insertAt(t.root, word, doc)
}

func splitOff(nk string, external bool, handle plp.Handle, children []*node, i int) *node {
	if external {
		return &node{key: nk[i:], external: true, handle: handle}
	}
	return &node{key: nk[i:], children: children}
}

func (t *Trie) insertAt(n *node, w string, doc string) (plp.Handle, bool, error) {
	nk := n.key
	i := lcp(w, nk)

	switch {
	case i == len(w) && i == len(nk):
		// Case 1: exact match at n.
		if n.external {
			return n.handle, false, nil
		}
		if tc := n.terminatingChild(); tc != nil {
			return tc.handle, false, nil
		}
		h := t.pool.Allocate(doc)
		n.children = append(n.children, &node{key: "*", external: true, handle: h})
		return h, true, nil

	case i == len(w) && i < len(nk):
		// Case 2: w is a proper prefix of nk. Split n.
		s := splitOff(nk, n.external, n.handle, n.children, i)
		h := t.pool.Allocate(doc)
		term := &node{key: "*", external: true, handle: h}
		n.key = nk[:i]
		n.external = false
		n.handle = noHandle
		n.children = []*node{s, term}
		return h, true, nil

	case i == len(nk) && i < len(w):
		rest := w[i:]
		if !n.external {
			// Case 3a: nk is a proper prefix of w; n is internal.
			for _, c := range n.children {
				if c.key[0] == rest[0] {
					return t.insertAt(c, rest, doc)
				}
			}
			h := t.pool.Allocate(doc)
			n.children = append(n.children, &node{key: rest, external: true, handle: h})
			return h, true, nil
		}
		// Case 3b: nk is a proper prefix of w; n is external. Split.
		a := &node{key: "*", external: true, handle: n.handle}
		h := t.pool.Allocate(doc)
		b := &node{key: rest, external: true, handle: h}
		n.external = false
		n.handle = noHandle
		n.children = []*node{a, b}
		// n.key is left unchanged (nk), per spec.
		return h, true, nil

	case i > 0:
		// Case 4: common prefix, both diverge.
		s := splitOff(nk, n.external, n.handle, n.children, i)
		h := t.pool.Allocate(doc)
		term := &node{key: w[i:], external: true, handle: h}
		n.key = nk[:i]
		n.external = false
		n.handle = noHandle
		n.children = []*node{s, term}
		return h, true, nil

	default:
		// Case 5: no common prefix; only legal at the root.
		if n != t.root {
			return 0, false, ErrCorruptTrie
		}
		for _, c := range n.children {
			if c.key[0] == w[0] {
				return t.insertAt(c, w, doc)
			}
		}
		h := t.pool.Allocate(doc)
		n.children = append(n.children, &node{key: w, external: true, handle: h})
		return h, true, nil
	}
}

// Lookup performs an exact-match lookup of word, incrementing the target
// external node's rank on success. Absence is not an error (spec §7).
func (t *Trie) Lookup(word string) (h plp.Handle, rank uint64, found bool) {
	if word == "" {
		return 0, 0, false
	}
	for _, c := range t.root.children {
		if c.key[0] == word[0] {
			return t.lookupAt(c, word)
		}
	}
	return 0, 0, false
}

func (t *Trie) lookupAt(n *node, w string) (plp.Handle, uint64, bool) {
	nk := n.key

	if nk == "*" {
		n.rank++
		return n.handle, n.rank, true
	}

	if w == nk {
		if n.external {
			n.rank++
			return n.handle, n.rank, true
		}
		tc := n.terminatingChild()
		if tc == nil {
			return 0, 0, false
		}
		return t.lookupAt(tc, w)
	}

	if len(w) <= len(nk) {
		return 0, 0, false
	}

	if !strings.HasPrefix(w, nk) {
		return 0, 0, false
	}

	rest := w[len(nk):]
	for _, c := range n.children {
		if c.key[0] == rest[0] {
			return t.lookupAt(c, rest)
		}
	}
	return 0, 0, false
}
