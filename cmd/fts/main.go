// Command fts is the primary CLI surface of spec §6: it indexes a corpus,
// then prompts for query words and a mode, repeating until the process is
// interrupted.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"fts-radix/config"
	"fts-radix/internal/corpus"
	"fts-radix/internal/lib/logger/sl"
	"fts-radix/internal/query"
	"fts-radix/internal/session"
	"fts-radix/internal/text"
	"fts-radix/internal/workers"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)
	ctx := context.Background()

	if err := os.MkdirAll(cfg.StorageDir, 0o755); err != nil {
		log.Error("failed to create storage dir", sl.Err(err))
		os.Exit(1)
	}

	sess, err := session.Open(log, session.Paths{
		PostingList: cfg.PostingListPath(),
		Trie:        cfg.TriePath(),
		Audit:       cfg.AuditPath(),
	})
	if err != nil {
		log.Error("failed to open session", sl.Err(err))
		os.Exit(1)
	}
	defer sess.Close()

	textStore, err := corpus.OpenStore(cfg.TextStorePath())
	if err != nil {
		log.Error("failed to open text store", sl.Err(err))
		os.Exit(1)
	}
	defer textStore.Close()

	pipeline := text.NewPipeline(text.NewStopWords())

	loader := corpus.NewLoader(log)
	docs, err := loadCorpus(loader, cfg.Corpus)
	if err != nil {
		log.Error("failed to load corpus", sl.Err(err))
		os.Exit(1)
	}

	start := time.Now()
	cleaned := cleanConcurrently(ctx, docs)

	// Indexing itself stays single-threaded (spec §5): only the
	// independent per-document cleaning above is fanned out.
	for _, doc := range cleaned {
		if err := textStore.Put(ctx, doc.ID, doc.Text); err != nil {
			log.Error("failed to store document text", "doc", doc.ID, sl.Err(err))
			os.Exit(1)
		}
		words := pipeline.Words(doc.Text)
		if err := sess.Build(doc.ID, words); err != nil {
			log.Error("failed to index document", "doc", doc.ID, sl.Err(err))
			os.Exit(1)
		}
	}
	fmt.Printf("Indexed %d documents in %v\n", len(docs), time.Since(start))

	engine := query.New(sess.Trie(), sess.Pool(), pipeline, textStore)

	runQueryLoop(ctx, os.Stdin, os.Stdout, engine, pipeline, cfg.MaxResults)
}

func loadCorpus(loader *corpus.Loader, cfg config.CorpusConfig) ([]corpus.Document, error) {
	if cfg.WikiDump != "" {
		return loader.LoadWikiDump(cfg.WikiDump)
	}
	return loader.LoadDir(cfg.Dir)
}

// cleanConcurrently runs text.Clean across docs using the generic worker
// pool, since cleaning one document's text never depends on another's;
// only the indexer itself (spec §5) is single-threaded.
func cleanConcurrently(ctx context.Context, docs []corpus.Document) []corpus.Document {
	jobs := make([]workers.Job[corpus.Document], len(docs))
	for i, doc := range docs {
		jobs[i] = workers.Job[corpus.Document]{
			ID:   workers.JobID(doc.ID),
			Args: doc,
			Fn: func(_ context.Context, d corpus.Document) (corpus.Document, error) {
				d.Text = text.Clean(d.Text)
				return d, nil
			},
		}
	}

	pool := workers.New[corpus.Document](0)
	results := pool.Run(ctx, jobs)

	cleaned := make([]corpus.Document, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		cleaned = append(cleaned, r.Value)
	}
	return cleaned
}

// runQueryLoop implements spec §6's CLI surface literally: space-separated
// query words, then a mode prompt re-issued until the answer is "1" or
// "2", then ordinal results, repeating until stdin closes. Results beyond
// maxResults are not printed.
func runQueryLoop(ctx context.Context, in *os.File, out *os.File, engine *query.Engine, pipeline *text.Pipeline, maxResults int) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "Enter query words: ")
		if !scanner.Scan() {
			return
		}
		words := pipeline.Words(scanner.Text())
		if len(words) == 0 {
			fmt.Fprintln(out, "no query words given")
			continue
		}

		mode := promptMode(scanner, out)

		var results []query.Result
		var err error
		if mode == 1 {
			results, err = engine.Any(words)
		} else {
			results, err = engine.All(ctx, words)
		}
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}

		if len(results) == 0 {
			fmt.Fprintln(out, "no matches")
			continue
		}
		if maxResults > 0 && len(results) > maxResults {
			results = results[:maxResults]
		}
		for i, r := range results {
			fmt.Fprintf(out, "%d: %s (score %d)\n", i, r.DocID, r.Score)
		}
	}
}

// promptMode re-prompts until the user enters "1" (ANY) or "2" (ALL).
func promptMode(scanner *bufio.Scanner, out *os.File) int {
	for {
		fmt.Fprint(out, "Mode (1=ANY, 2=ALL): ")
		if !scanner.Scan() {
			return 1
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err == nil && (n == 1 || n == 2) {
			return n
		}
		fmt.Fprintln(out, "enter 1 or 2")
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}

	return log
}
