package text

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordsLowercasesAndFiltersStopWords(t *testing.T) {
	p := NewPipeline(NewStopWords())
	words := p.Words("The Cats are running in the garden")
	require.NotContains(t, words, "the")
	require.NotContains(t, words, "are")
	require.NotContains(t, words, "in")
	require.Contains(t, words, "cat") // stemmed from "Cats"
}

func TestCountCountsNormalizedOccurrences(t *testing.T) {
	p := NewPipeline(NewStopWords())
	n := p.Count("cats love cats and more cats", "cat")
	require.Equal(t, 3, n)
}

func TestCleanCollapsesNewlinesAndStripsControlChars(t *testing.T) {
	got := Clean("Hello\n\n\nWorld\x00!")
	require.Equal(t, "Hello World!", got)
}

func TestLoadStopWordsSkipsBlankAndCommentLines(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/stop.txt"
	content := "# comment\nthe\n\nAND\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sw, err := LoadStopWords(path)
	require.NoError(t, err)
	require.True(t, sw.IsStopWord("the"))
	require.True(t, sw.IsStopWord("and"))
	require.False(t, sw.IsStopWord("cat"))
}
