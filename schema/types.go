package schema

import (
	"fmt"
	"sort"
)

// Schema declares the index space of the model: the cardinality of every
// index name, and, for every variable, the ordered list of index names that
// identify one instance of that variable. The ordered list is a mixed-radix
// numeral: position 0 is the most significant digit (see RowIndex).
//
// A Schema is immutable after New: callers that need to grow it construct a
// new one from an amended pair of maps.
type Schema struct {
	indexBound      map[string]int
	variableIndices map[string][]string
}

// New validates and builds a Schema from the two declaration maps.
//
// Validates: every index referenced by some variable has a positive bound
// in indexBound (ErrSchemaViolation otherwise). Does not check cross-variable
// invariants like "|j| == |i|" or the LP's fixed index-list shapes — those
// are specific to the lp package and are validated there, since a bare
// Schema may be reused by callers that never touch the LP variables.
func New(indexBound map[string]int, variableIndices map[string][]string) (*Schema, error) {
	ib := make(map[string]int, len(indexBound))
	for k, v := range indexBound {
		ib[k] = v
	}

	vi := make(map[string][]string, len(variableIndices))
	for v, idx := range variableIndices {
		cp := make([]string, len(idx))
		copy(cp, idx)
		vi[v] = cp
	}

	s := &Schema{indexBound: ib, variableIndices: vi}

	for v, idx := range vi {
		for _, k := range idx {
			bound, ok := ib[k]
			if !ok {
				return nil, fmt.Errorf("schema: variable %q references undeclared index %q: %w", v, k, ErrSchemaViolation)
			}
			if bound <= 0 {
				return nil, fmt.Errorf("schema: index %q has non-positive bound %d: %w", k, bound, ErrSchemaViolation)
			}
		}
	}

	return s, nil
}

// Variables returns the declared variable names in sorted order. Go map
// iteration is not stable across runs; callers that need a deterministic
// variable ordering (e.g. to build a reproducible RowIndex) should either
// use this or, better, supply their own explicit ordered list.
func (s *Schema) Variables() []string {
	out := make([]string, 0, len(s.variableIndices))
	for v := range s.variableIndices {
		out = append(out, v)
	}
	sort.Strings(out)

	return out
}

// IndexBound returns the cardinality declared for index name k.
func (s *Schema) IndexBound(k string) (int, error) {
	bound, ok := s.indexBound[k]
	if !ok {
		return 0, fmt.Errorf("schema: unknown index %q: %w", k, ErrIndexDomain)
	}

	return bound, nil
}

// VarIndices returns the ordered index-name list declared for variable v.
// The returned slice is a copy; callers must not mutate it.
func (s *Schema) VarIndices(v string) ([]string, error) {
	idx, ok := s.variableIndices[v]
	if !ok {
		return nil, fmt.Errorf("schema: unknown variable %q: %w", v, ErrSchemaViolation)
	}
	out := make([]string, len(idx))
	copy(out, idx)

	return out, nil
}

// VarRadix returns the bound of each index in v's declared order: the
// mixed-radix base for one instance of v.
func (s *Schema) VarRadix(v string) ([]int, error) {
	idx, err := s.VarIndices(v)
	if err != nil {
		return nil, err
	}
	radix := make([]int, len(idx))
	for i, k := range idx {
		b, err := s.IndexBound(k)
		if err != nil {
			return nil, err
		}
		radix[i] = b
	}

	return radix, nil
}

// IndicesDictToPlain orders a {indexName: value} map into the plain
// positional slice expected by v's declared index list. Fails with
// ErrIndexDomain if the key set does not exactly match.
func (s *Schema) IndicesDictToPlain(v string, indices map[string]int) ([]int, error) {
	order, err := s.VarIndices(v)
	if err != nil {
		return nil, err
	}
	if len(indices) != len(order) {
		return nil, fmt.Errorf("schema: variable %q expects %d indices, got %d: %w", v, len(order), len(indices), ErrIndexDomain)
	}

	plain := make([]int, len(order))
	for i, k := range order {
		val, ok := indices[k]
		if !ok {
			return nil, fmt.Errorf("schema: variable %q missing index %q: %w", v, k, ErrIndexDomain)
		}
		bound, err := s.IndexBound(k)
		if err != nil {
			return nil, err
		}
		if val < 0 || val >= bound {
			return nil, fmt.Errorf("schema: variable %q index %q=%d out of [0,%d): %w", v, k, val, bound, ErrIndexDomain)
		}
		plain[i] = val
	}

	return plain, nil
}

// IndicesPlainToDict is the inverse of IndicesDictToPlain.
func (s *Schema) IndicesPlainToDict(v string, plain []int) (map[string]int, error) {
	order, err := s.VarIndices(v)
	if err != nil {
		return nil, err
	}
	if len(plain) != len(order) {
		return nil, fmt.Errorf("schema: variable %q expects %d indices, got %d: %w", v, len(order), len(plain), ErrIndexDomain)
	}

	out := make(map[string]int, len(order))
	for i, k := range order {
		bound, err := s.IndexBound(k)
		if err != nil {
			return nil, err
		}
		if plain[i] < 0 || plain[i] >= bound {
			return nil, fmt.Errorf("schema: variable %q index %q=%d out of [0,%d): %w", v, k, plain[i], bound, ErrIndexDomain)
		}
		out[k] = plain[i]
	}

	return out, nil
}
