// Package session owns the paired Trie + Posting-List Pool for a single
// indexing/query session, matching spec §5's "co-owned by a single session
// object" resource model, and the build-info audit stream of spec §6.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"fts-radix/internal/lib/logger/sl"
	"fts-radix/internal/plp"
	"fts-radix/internal/trie"
)

// ErrCorruptPair is returned at bootstrap when the posting-list file has
// content but the trie file is absent (spec §6/§7). A trie file next to an
// empty or absent posting-list file is not an error: Open starts fresh.
var ErrCorruptPair = errors.New("session: posting-list file and trie file must both exist or both be absent")

// Paths names the on-disk files a Session persists to.
type Paths struct {
	PostingList string // spec §6 Posting-List file
	Trie        string // spec §6 Trie file
	Audit       string // spec §6 build-info audit stream
}

// Session co-owns a Trie and its Posting-List Pool, and the audit stream
// flushed after every indexed document.
type Session struct {
	log   *slog.Logger
	paths Paths

	pool *plp.Pool
	ct   *trie.Trie

	audit *os.File
}

// Open bootstraps a session per spec §6: if the posting-list file is
// empty or absent, a fresh trie/pool pair is started; otherwise both
// files must exist and are loaded together, or ErrCorruptPair is
// returned. The audit stream is opened for the session's lifetime.
func Open(log *slog.Logger, paths Paths) (*Session, error) {
	var pool *plp.Pool
	var ct *trie.Trie

	if plp.IsEmptyFile(paths.PostingList) {
		pool = plp.New()
		ct = trie.New(pool)
	} else if !fileExists(paths.Trie) {
		return nil, fmt.Errorf("session: open: %w", ErrCorruptPair)
	} else {
		var err error
		pool, err = plp.Load(paths.PostingList)
		if err != nil {
			return nil, fmt.Errorf("session: open: %w", err)
		}
		ct, err = trie.Load(paths.Trie, pool)
		if err != nil {
			return nil, fmt.Errorf("session: open: %w", err)
		}
	}

	audit, err := os.OpenFile(paths.Audit, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("session: open: audit stream: %w", err)
	}

	return &Session{log: log, paths: paths, pool: pool, ct: ct, audit: audit}, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Trie returns the session's compressed trie, for use by the query engine.
func (s *Session) Trie() *trie.Trie { return s.ct }

// Pool returns the session's posting-list pool, for use by the query
// engine.
func (s *Session) Pool() *plp.Pool { return s.pool }

// Close flushes and closes the audit stream. Persistence of the trie and
// pool themselves happens per-document via Save, not here.
func (s *Session) Close() error {
	if err := s.audit.Close(); err != nil {
		return fmt.Errorf("session: close: %w", err)
	}
	return nil
}

// Save persists the pool then the trie, each via temp-file + rename, so
// each file is individually crash-consistent (spec §5). A failed save
// leaves in-memory state untouched.
func (s *Session) Save() error {
	if err := s.pool.Save(s.paths.PostingList); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	if err := s.ct.Save(s.paths.Trie); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

// Build indexes words into the trie/pool as occurring in docID (spec
// §4.4), writes an audit line per word, flushes the audit stream, and
// persists the pair. Empty words are rejected at the boundary and
// skipped, not treated as a fatal error for the whole document.
func (s *Session) Build(docID string, words []string) error {
	for _, w := range words {
		if w == "" {
			s.log.Warn("skipping empty word", "doc", docID)
			continue
		}

		h, created, err := s.ct.InsertOrLocate(w, docID)
		if err != nil {
			return fmt.Errorf("session: build: %w", err)
		}

		if created {
			if _, err := fmt.Fprintf(s.audit, "'%s'(in %s) -> trie\n", w, docID); err != nil {
				return fmt.Errorf("session: build: audit: %w: %w", plp.ErrPersistIO, err)
			}
			continue
		}

		if err := s.pool.Add(h, docID); err != nil {
			return fmt.Errorf("session: build: %w", err)
		}
		docs, err := s.pool.At(h)
		if err != nil {
			return fmt.Errorf("session: build: %w", err)
		}
		if _, err := fmt.Fprintf(s.audit, "trie: '%s'(in %s) found in OL: %s\n", w, docID, setRepr(docs)); err != nil {
			return fmt.Errorf("session: build: audit: %w: %w", plp.ErrPersistIO, err)
		}
	}

	if err := s.audit.Sync(); err != nil {
		s.log.Error("failed to flush audit stream", sl.Err(err))
	}

	return s.Save()
}

func setRepr(docs []string) string {
	return "{" + strings.Join(docs, ", ") + "}"
}
