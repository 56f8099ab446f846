// Package corpus implements the external collaborators spec §1 calls out
// as out of scope for the core: document acquisition (a directory of text
// files or a gzip-compressed Wikipedia abstract dump) and the Text Source
// the query engine uses for ALL-mode rescoring. Documents are taken as
// plain text; no HTML is parsed here.
package corpus

import (
	"context"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

// Store is the Text Source collaborator of spec §6, backed by
// github.com/syndtr/goleveldb/leveldb — an adaptation of the teacher's
// internal/storage/leveldb/leveldb.go repurposed from "document + word
// index storage" down to exactly what the collaborator interface needs:
// DocId -> raw text.
type Store struct {
	db *leveldb.DB
}

// OpenStore opens (or creates) a leveldb-backed text store at path.
func OpenStore(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("corpus: open store: %w", err)
	}
	return &Store{db: db}, nil
}

// Put stores text under docID, overwriting any previous value.
func (s *Store) Put(ctx context.Context, docID, text string) error {
	if err := s.db.Put([]byte(docID), []byte(text), nil); err != nil {
		return fmt.Errorf("corpus: put %s: %w", docID, err)
	}
	return nil
}

// Get implements query.TextSource: it returns the plain text for docID.
func (s *Store) Get(_ context.Context, docID string) (string, error) {
	data, err := s.db.Get([]byte(docID), nil)
	if err != nil {
		return "", fmt.Errorf("corpus: get %s: %w", docID, err)
	}
	return string(data), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
