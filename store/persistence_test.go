package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netopt-go/scheduler/store"
)

// TestRoundTripPersistence checks that load -> snapshot -> mutate -> sync ->
// reload -> snapshot reproduces the post-mutation snapshot within 1e-9.
func TestRoundTripPersistence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")

	s := store.New()
	s.Set(store.Key{Var: "x_eq", Indices: []int{0, 0, 0}}, 150)
	s.Set(store.Key{Var: "phi", Indices: []int{1, 0}}, 200.25)
	require.NoError(t, store.SyncFile(path, s))

	loaded, err := store.LoadFile(path)
	require.NoError(t, err)

	loaded.Set(store.Key{Var: "z", Indices: []int{0, 0, 0}}, 3.5)
	require.NoError(t, store.SyncFile(path, loaded))

	reloaded, err := store.LoadFile(path)
	require.NoError(t, err)

	for _, row := range store.SortedRows(loaded.Iter()) {
		v, err := reloaded.Get(row.Key)
		require.NoError(t, err)
		require.InDelta(t, row.Value, v, 1e-9)
	}
	require.Equal(t, loaded.Len(), reloaded.Len())
}

func TestLoadMissingFileYieldsEmptyStore(t *testing.T) {
	s, err := store.LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())
}

func TestLoadFileWhitespaceVariants(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("x_eq\t0  0\t0   150\n\n"), 0o644))

	s, err := store.LoadFile(path)
	require.NoError(t, err)
	v, err := s.Get(store.Key{Var: "x_eq", Indices: []int{0, 0, 0}})
	require.NoError(t, err)
	require.Equal(t, 150.0, v)
}
