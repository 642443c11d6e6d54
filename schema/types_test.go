package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netopt-go/scheduler/schema"
)

func twoNodeSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New(
		map[string]int{"j": 2, "i": 2, "rho": 1, "l": 1},
		map[string][]string{
			"x":    {"j", "i", "rho", "l"},
			"y":    {"j", "rho", "l"},
			"g":    {"j", "rho", "l"},
			"z":    {"j", "rho", "l"},
			"x_eq": {"j", "rho", "l"},
		},
	)
	require.NoError(t, err)

	return s
}

func TestNewRejectsUndeclaredIndex(t *testing.T) {
	_, err := schema.New(
		map[string]int{"j": 2},
		map[string][]string{"x": {"j", "i"}},
	)
	require.ErrorIs(t, err, schema.ErrSchemaViolation)
}

func TestNewRejectsNonPositiveBound(t *testing.T) {
	_, err := schema.New(
		map[string]int{"j": 0},
		map[string][]string{"x": {"j"}},
	)
	require.ErrorIs(t, err, schema.ErrSchemaViolation)
}

func TestIndicesRoundTrip(t *testing.T) {
	s := twoNodeSchema(t)

	plain, err := s.IndicesDictToPlain("x", map[string]int{"j": 1, "i": 0, "rho": 0, "l": 0})
	require.NoError(t, err)
	require.Equal(t, []int{1, 0, 0, 0}, plain)

	back, err := s.IndicesPlainToDict("x", plain)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"j": 1, "i": 0, "rho": 0, "l": 0}, back)
}

func TestIndicesDictToPlainRejectsWrongKeySet(t *testing.T) {
	s := twoNodeSchema(t)

	_, err := s.IndicesDictToPlain("x", map[string]int{"j": 0, "i": 0, "rho": 0})
	require.ErrorIs(t, err, schema.ErrIndexDomain)
}

func TestIndicesDictToPlainRejectsOutOfRange(t *testing.T) {
	s := twoNodeSchema(t)

	_, err := s.IndicesDictToPlain("x", map[string]int{"j": 5, "i": 0, "rho": 0, "l": 0})
	require.ErrorIs(t, err, schema.ErrIndexDomain)
}

func TestVarRadix(t *testing.T) {
	s := twoNodeSchema(t)

	radix, err := s.VarRadix("x")
	require.NoError(t, err)
	require.Equal(t, []int{2, 2, 1, 1}, radix)
}

func TestVariablesSorted(t *testing.T) {
	s := twoNodeSchema(t)
	require.Equal(t, []string{"g", "x", "x_eq", "y", "z"}, s.Variables())
}
