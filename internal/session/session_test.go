package session

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPaths(t *testing.T) Paths {
	dir := t.TempDir()
	return Paths{
		PostingList: filepath.Join(dir, "ol.txt"),
		Trie:        filepath.Join(dir, "trie.bin"),
		Audit:       filepath.Join(dir, "build_info.txt"),
	}
}

func TestOpenFreshWhenNoFilesExist(t *testing.T) {
	paths := testPaths(t)
	s, err := Open(testLogger(), paths)
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, 0, s.Pool().Size())
}

func TestOpenRefusesMismatchedPair(t *testing.T) {
	paths := testPaths(t)
	require.NoError(t, os.WriteFile(paths.PostingList, []byte("d1\n"), 0o644))
	// Trie file deliberately absent.

	_, err := Open(testLogger(), paths)
	require.ErrorIs(t, err, ErrCorruptPair)
}

func TestBuildAndReopenRoundTrip(t *testing.T) {
	paths := testPaths(t)

	s, err := Open(testLogger(), paths)
	require.NoError(t, err)
	require.NoError(t, s.Build("d1", []string{"car", "cart"}))
	require.NoError(t, s.Build("d2", []string{"car"}))
	require.NoError(t, s.Close())

	reopened, err := Open(testLogger(), paths)
	require.NoError(t, err)
	defer reopened.Close()

	h, _, found := reopened.Trie().Lookup("car")
	require.True(t, found)
	docs, err := reopened.Pool().At(h)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"d1", "d2"}, docs)
}

func TestReindexingSameDocIsIdempotent(t *testing.T) {
	paths := testPaths(t)
	s, err := Open(testLogger(), paths)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Build("d1", []string{"go", "go", "gopher"}))
	sizeAfterFirst := s.Pool().Size()

	require.NoError(t, s.Build("d1", []string{"go", "go", "gopher"}))
	require.Equal(t, sizeAfterFirst, s.Pool().Size())

	h, _, found := s.Trie().Lookup("go")
	require.True(t, found)
	docs, err := s.Pool().At(h)
	require.NoError(t, err)
	require.Equal(t, []string{"d1"}, docs)
}

func TestBuildSkipsEmptyWords(t *testing.T) {
	paths := testPaths(t)
	s, err := Open(testLogger(), paths)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Build("d1", []string{"", "car", ""}))
	_, _, found := s.Trie().Lookup("car")
	require.True(t, found)
}

func TestAuditStreamRecordsOneLinePerWord(t *testing.T) {
	paths := testPaths(t)
	s, err := Open(testLogger(), paths)
	require.NoError(t, err)
	require.NoError(t, s.Build("d1", []string{"car"}))
	require.NoError(t, s.Build("d2", []string{"car"}))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(paths.Audit)
	require.NoError(t, err)
	require.Contains(t, string(data), "'car'(in d1) -> trie")
	require.Contains(t, string(data), "trie: 'car'(in d2) found in OL:")
}
