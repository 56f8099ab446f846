package plp

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func sorted(ss []string) []string {
	sort.Strings(ss)
	return ss
}

func TestAllocateAndAt(t *testing.T) {
	p := New()
	h := p.Allocate("d1")

	docs, err := p.At(h)
	require.NoError(t, err)
	require.Equal(t, []string{"d1"}, docs)
}

func TestAddIsIdempotent(t *testing.T) {
	p := New()
	h := p.Allocate("d1")
	require.NoError(t, p.Add(h, "d2"))
	require.NoError(t, p.Add(h, "d2"))

	docs, err := p.At(h)
	require.NoError(t, err)
	require.Equal(t, []string{"d1", "d2"}, sorted(docs))
}

func TestAtBadHandle(t *testing.T) {
	p := New()
	p.Allocate("d1")

	_, err := p.At(5)
	require.ErrorIs(t, err, ErrBadHandle)

	_, err = p.At(-1)
	require.ErrorIs(t, err, ErrBadHandle)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ol.txt")

	p := New()
	h1 := p.Allocate("d1")
	h2 := p.Allocate("d2")
	require.NoError(t, p.Add(h1, "d3"))

	require.NoError(t, p.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, p.Size(), loaded.Size())

	docs1, err := loaded.At(h1)
	require.NoError(t, err)
	require.Equal(t, []string{"d1", "d3"}, sorted(docs1))

	docs2, err := loaded.At(h2)
	require.NoError(t, err)
	require.Equal(t, []string{"d2"}, docs2)
}

func TestLoadPopulatesFreeSlotsFromBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ol.txt")
	require.NoError(t, os.WriteFile(path, []byte("d1\n\nd2,d3\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, p.Size())

	_, err = p.At(1)
	require.ErrorIs(t, err, ErrBadHandle)

	// Allocate reuses the free slot at index 1 rather than appending.
	h := p.Allocate("d4")
	require.Equal(t, Handle(1), h)
	require.Equal(t, 3, p.Size())
}

func TestSaveSurfacesPersistIOErrorOnBadPath(t *testing.T) {
	p := New()
	p.Allocate("d1")

	// Parent directory doesn't exist, so os.Create must fail.
	err := p.Save(filepath.Join(t.TempDir(), "missing-dir", "ol.txt"))
	require.ErrorIs(t, err, ErrPersistIO)
}

func TestIsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")
	require.True(t, IsEmptyFile(missing))

	blank := filepath.Join(dir, "blank.txt")
	require.NoError(t, os.WriteFile(blank, []byte("  \n\n"), 0o644))
	require.True(t, IsEmptyFile(blank))

	nonEmpty := filepath.Join(dir, "full.txt")
	require.NoError(t, os.WriteFile(nonEmpty, []byte("d1\n"), 0o644))
	require.False(t, IsEmptyFile(nonEmpty))
}
