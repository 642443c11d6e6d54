package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netopt-go/scheduler/store"
)

func TestGetSetRoundTrip(t *testing.T) {
	s := store.New()
	key := store.Key{Var: "x", Indices: []int{0, 1, 0, 0}}

	_, err := s.Get(key)
	require.ErrorIs(t, err, store.ErrNoData)

	s.Set(key, 42.5)
	v, err := s.Get(key)
	require.NoError(t, err)
	require.Equal(t, 42.5, v)
}

func TestCloneIsIndependent(t *testing.T) {
	s := store.New()
	key := store.Key{Var: "y", Indices: []int{0}}
	s.Set(key, 1.0)

	clone := s.Clone()
	clone.Set(key, 2.0)

	v, err := s.Get(key)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	cv, err := clone.Get(key)
	require.NoError(t, err)
	require.Equal(t, 2.0, cv)
}

func TestUpdateOverwrites(t *testing.T) {
	base := store.New()
	base.Set(store.Key{Var: "z", Indices: []int{0}}, 1.0)

	delta := store.New()
	delta.Set(store.Key{Var: "z", Indices: []int{0}}, 9.0)
	delta.Set(store.Key{Var: "z", Indices: []int{1}}, 4.0)

	base.Update(delta)

	v, err := base.Get(store.Key{Var: "z", Indices: []int{0}})
	require.NoError(t, err)
	require.Equal(t, 9.0, v)
	v, err = base.Get(store.Key{Var: "z", Indices: []int{1}})
	require.NoError(t, err)
	require.Equal(t, 4.0, v)
}

func TestSortedRowsOrder(t *testing.T) {
	s := store.New()
	s.Set(store.Key{Var: "x", Indices: []int{1, 0}}, 1)
	s.Set(store.Key{Var: "x", Indices: []int{0, 1}}, 2)
	s.Set(store.Key{Var: "a", Indices: []int{0}}, 3)

	sorted := store.SortedRows(s.Iter())
	require.Equal(t, "a", sorted[0].Key.Var)
	require.Equal(t, []int{0, 1}, sorted[1].Key.Indices)
	require.Equal(t, []int{1, 0}, sorted[2].Key.Indices)
}
