package corpus

import (
	"compress/gzip"
	"crypto/md5"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"fts-radix/internal/lib/logger/sl"
)

// Loader acquires documents for indexing: the out-of-scope "document
// acquisition" collaborator named in spec §1.
type Loader struct {
	log *slog.Logger
}

// NewLoader builds a Loader.
func NewLoader(log *slog.Logger) *Loader {
	return &Loader{log: log}
}

// LoadDir reads every regular file directly under dir as one Document,
// using the file name as the DocId. This is the simple "finite corpus of
// text documents" path spec §1 describes.
func (l *Loader) LoadDir(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("corpus: load dir: %w", err)
	}

	docs := make([]Document, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f, err := os.Open(path)
		if err != nil {
			l.log.Error("failed to open document", "path", path, sl.Err(err))
			continue
		}
		text, err := ReadAll(f)
		f.Close()
		if err != nil {
			l.log.Error("failed to read document", "path", path, sl.Err(err))
			continue
		}
		docs = append(docs, Document{ID: e.Name(), Text: text})
	}
	return docs, nil
}

// LoadWikiDump loads a gzip-compressed Wikipedia abstract dump, the
// teacher's own corpus format (internal/services/loader/loader.go),
// deriving a stable DocId per document via MD5 of its text.
func (l *Loader) LoadWikiDump(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: load wiki dump: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("corpus: load wiki dump: %w", err)
	}
	defer gz.Close()

	dump := struct {
		Documents []Document `xml:"doc"`
	}{}

	dec := xml.NewDecoder(gz)
	if err := dec.Decode(&dump); err != nil {
		return nil, fmt.Errorf("corpus: load wiki dump: %w", err)
	}

	for i := range dump.Documents {
		dump.Documents[i].ID = docID(dump.Documents[i].Text)
	}
	return dump.Documents, nil
}

func docID(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ReadAll drains r fully. LoadDir uses it over each opened file; callers
// composing their own io.Reader sources (e.g. network fetches) can reuse
// it the same way ahead of cleaning and indexing.
func ReadAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("corpus: read all: %w", err)
	}
	return string(data), nil
}
