package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netopt-go/scheduler/schema"
	"github.com/netopt-go/scheduler/store"
)

func simpleSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New(
		map[string]int{"j": 2, "l": 1},
		map[string][]string{"phi": {"j", "l"}},
	)
	require.NoError(t, err)

	return s
}

func TestInterfaceDictRoundTrip(t *testing.T) {
	s := simpleSchema(t)
	di := store.NewInterface(s, store.New())

	require.NoError(t, di.Set("phi", 10, map[string]int{"j": 1, "l": 0}))
	v, err := di.Get("phi", map[string]int{"j": 1, "l": 0})
	require.NoError(t, err)
	require.Equal(t, 10.0, v)

	_, err = di.Get("phi", map[string]int{"j": 0, "l": 0})
	require.ErrorIs(t, err, store.ErrNoData)
}

func TestDefaultingFallsBackToZero(t *testing.T) {
	s := simpleSchema(t)
	di := store.NewInterface(s, store.New())
	def := store.NewDefaulting(di)

	v, err := def.Get("phi", map[string]int{"j": 0, "l": 0})
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
}

func TestDefaultingCustomDefault(t *testing.T) {
	s := simpleSchema(t)
	di := store.NewInterface(s, store.New())
	def := store.NewDefaulting(di, store.WithDefault("phi", 7))

	v, err := def.Get("phi", map[string]int{"j": 0, "l": 0})
	require.NoError(t, err)
	require.Equal(t, 7.0, v)
}

func TestDefaultingNoDefaultPropagates(t *testing.T) {
	s := simpleSchema(t)
	di := store.NewInterface(s, store.New())
	def := store.NewDefaulting(di, store.WithNoDefault("phi"))

	_, err := def.Get("phi", map[string]int{"j": 0, "l": 0})
	require.ErrorIs(t, err, store.ErrNoData)
}

func TestZeroingNeverErrors(t *testing.T) {
	s := simpleSchema(t)
	di := store.NewInterface(s, store.New())
	z := store.NewZeroing(di)

	require.Equal(t, 0.0, z.Get("phi", map[string]int{"j": 0, "l": 0}))

	require.NoError(t, di.Set("phi", 5, map[string]int{"j": 0, "l": 0}))
	require.Equal(t, 5.0, z.Get("phi", map[string]int{"j": 0, "l": 0}))
}
