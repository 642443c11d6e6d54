package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netopt-go/scheduler/schema"
)

func TestRadixIterLexicographicOrder(t *testing.T) {
	var got [][]int
	err := schema.RadixIter([]int{2, 3}, func(idx []int) error {
		got = append(got, append([]int(nil), idx...))

		return nil
	})
	require.NoError(t, err)
	require.Equal(t, [][]int{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
	}, got)
}

func TestRadixIterPropagatesCallbackError(t *testing.T) {
	count := 0
	err := schema.RadixIter([]int{2, 2}, func(idx []int) error {
		count++
		if count == 2 {
			return schema.ErrIndexDomain
		}

		return nil
	})
	require.ErrorIs(t, err, schema.ErrIndexDomain)
	require.Equal(t, 2, count)
}
