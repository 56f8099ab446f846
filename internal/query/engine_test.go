package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"fts-radix/internal/plp"
	"fts-radix/internal/text"
	"fts-radix/internal/trie"
)

type fakeTextSource struct {
	docs map[string]string
}

func (f *fakeTextSource) Get(_ context.Context, docID string) (string, error) {
	txt, ok := f.docs[docID]
	if !ok {
		return "", errors.New("not found")
	}
	return txt, nil
}

func setup(t *testing.T) (*trie.Trie, *plp.Pool) {
	t.Helper()
	pool := plp.New()
	tr := trie.New(pool)
	return tr, pool
}

func TestAnyRanksByAccumulatedRank(t *testing.T) {
	// S5: after S3 (car -> d1, cat -> d2), lookup("car") x3, lookup("cat")
	// x1, then query ["car","cat"] ANY => [d1, d2] (score 4 vs 2: the
	// query's own lookups bump each rank once more).
	tr, pool := setup(t)
	_, _, err := tr.InsertOrLocate("car", "d1")
	require.NoError(t, err)
	_, _, err = tr.InsertOrLocate("cat", "d2")
	require.NoError(t, err)

	tr.Lookup("car")
	tr.Lookup("car")
	tr.Lookup("car")
	tr.Lookup("cat")

	eng := New(tr, pool, text.NewPipeline(text.NewStopWords()), &fakeTextSource{})
	results, err := eng.Any([]string{"car", "cat"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "d1", results[0].DocID)
	require.Equal(t, "d2", results[1].DocID)
}

func TestAllReturnsEmptyOnFirstMiss(t *testing.T) {
	// S6: after merging S1/S2 (cart -> d1, car -> d2), query ["cart","zoo"]
	// ALL => [].
	tr, pool := setup(t)
	_, _, err := tr.InsertOrLocate("cart", "d1")
	require.NoError(t, err)
	_, _, err = tr.InsertOrLocate("car", "d2")
	require.NoError(t, err)

	eng := New(tr, pool, text.NewPipeline(text.NewStopWords()), &fakeTextSource{})
	results, err := eng.All(context.Background(), []string{"cart", "zoo"})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestAllIntersectsAndRescoresByMaxRankWord(t *testing.T) {
	tr, pool := setup(t)
	h1, _, err := tr.InsertOrLocate("cat", "d1")
	require.NoError(t, err)
	require.NoError(t, pool.Add(h1, "d2"))
	h2, _, err := tr.InsertOrLocate("hat", "d1")
	require.NoError(t, err)
	require.NoError(t, pool.Add(h2, "d2"))

	// Bump "cat"'s rank above "hat"'s so "cat" becomes the rescoring axis.
	tr.Lookup("cat")
	tr.Lookup("cat")
	tr.Lookup("hat")

	ts := &fakeTextSource{docs: map[string]string{
		"d1": "the cat sat near a hat and another cat",
		"d2": "a single cat and a hat",
	}}
	eng := New(tr, pool, text.NewPipeline(text.NewStopWords()), ts)

	results, err := eng.All(context.Background(), []string{"cat", "hat"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "d1", results[0].DocID) // 2 occurrences of "cat"
	require.Equal(t, "d2", results[1].DocID) // 1 occurrence of "cat"
}

func TestAllSurfacesDocumentUnavailable(t *testing.T) {
	tr, pool := setup(t)
	_, _, err := tr.InsertOrLocate("car", "d1")
	require.NoError(t, err)

	eng := New(tr, pool, text.NewPipeline(text.NewStopWords()), &fakeTextSource{})
	_, err = eng.All(context.Background(), []string{"car"})
	require.ErrorIs(t, err, ErrDocumentUnavailable)
}

func TestAllResultIsSubsetOfAny(t *testing.T) {
	tr, pool := setup(t)
	h1, _, err := tr.InsertOrLocate("cat", "d1")
	require.NoError(t, err)
	require.NoError(t, pool.Add(h1, "d2"))
	_, _, err = tr.InsertOrLocate("hat", "d2")
	require.NoError(t, err)

	ts := &fakeTextSource{docs: map[string]string{
		"d1": "cat",
		"d2": "cat hat",
	}}
	eng := New(tr, pool, text.NewPipeline(text.NewStopWords()), ts)

	anyResults, err := eng.Any([]string{"cat", "hat"})
	require.NoError(t, err)
	allResults, err := eng.All(context.Background(), []string{"cat", "hat"})
	require.NoError(t, err)

	anySet := map[string]bool{}
	for _, r := range anyResults {
		anySet[r.DocID] = true
	}
	for _, r := range allResults {
		require.True(t, anySet[r.DocID])
	}
}
