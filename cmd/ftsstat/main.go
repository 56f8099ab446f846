// Command ftsstat is the enrichment stats explorer: it loads an existing
// session's trie (without reindexing) and opens an interactive terminal
// view of its structural statistics.
package main

import (
	"log/slog"
	"os"

	"fts-radix/config"
	"fts-radix/internal/lib/logger/sl"
	"fts-radix/internal/plp"
	"fts-radix/internal/statsui"
	"fts-radix/internal/trie"
)

func main() {
	cfg := config.MustLoad()
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	pool, err := plp.Load(cfg.PostingListPath())
	if err != nil {
		log.Error("failed to load posting-list pool", sl.Err(err))
		os.Exit(1)
	}

	ct, err := trie.Load(cfg.TriePath(), pool)
	if err != nil {
		log.Error("failed to load trie", sl.Err(err))
		os.Exit(1)
	}

	ui := statsui.New(log, ct)
	defer ui.Close()

	if err := ui.Start(); err != nil {
		log.Error("stats explorer exited with error", sl.Err(err))
		os.Exit(1)
	}
}
