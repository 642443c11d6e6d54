package schema

import "fmt"

// RowIndex enumerates every instance of an ordered set of variables and
// assigns each a contiguous position in one dense row: instances of
// vars[0] occupy positions [0, N0), then vars[1] occupies [N0, N0+N1), and
// so on. Within a variable, instances are ordered by the lexicographic
// product of its index ranges in declared index order (position 0 most
// significant), exactly as linsmat.py's RowIndex.get_pos computes it.
//
// The variable order is caller-supplied and fixed at construction — Go map
// iteration order is not stable, so, unlike the Python original (which
// iterates a dict's keys), callers here must pass the order they depend on
// explicitly. The lp package's [y, x, z, g] contract is one such caller.
type RowIndex struct {
	schema *Schema
	vars   []string

	radix      map[string][]int // per-variable mixed-radix base, index order
	multiplier map[string][]int // per-variable positional multiplier (radix_mult_vectors)
	base       map[string]int   // per-variable base offset in the row
	length     int              // total row length L
}

// NewRowIndex builds a RowIndex over vars, in the given order.
func NewRowIndex(s *Schema, vars []string) (*RowIndex, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("schema: RowIndex requires at least one variable: %w", ErrSchemaViolation)
	}

	ri := &RowIndex{
		schema:     s,
		vars:       append([]string(nil), vars...),
		radix:      make(map[string][]int, len(vars)),
		multiplier: make(map[string][]int, len(vars)),
		base:       make(map[string]int, len(vars)),
	}

	offset := 0
	for _, v := range ri.vars {
		radix, err := s.VarRadix(v)
		if err != nil {
			return nil, err
		}
		ri.radix[v] = radix
		ri.multiplier[v] = mixedRadixMultipliers(radix)
		ri.base[v] = offset
		offset += product(radix)
	}
	ri.length = offset

	return ri, nil
}

// mixedRadixMultipliers returns, for a mixed-radix base radix[0..n-1], the
// positional multiplier vector m such that decimal = sum(digit[t]*m[t]):
// m[n-1] = 1, m[t] = radix[t+1] * m[t+1].
func mixedRadixMultipliers(radix []int) []int {
	m := make([]int, len(radix))
	if len(m) == 0 {
		return m
	}
	m[len(m)-1] = 1
	for t := len(m) - 2; t >= 0; t-- {
		m[t] = radix[t+1] * m[t+1]
	}

	return m
}

func product(radix []int) int {
	p := 1
	for _, r := range radix {
		p *= r
	}

	return p
}

// RowLen returns the total row length L = sum_v prod(bound(k)) over v's
// declared indices.
func (ri *RowIndex) RowLen() int {
	return ri.length
}

// SegmentRange returns the contiguous [start, start+length) range variable
// v occupies within the row, for callers (e.g. the ga package's gene
// segments) that operate on one variable's block of positions directly.
func (ri *RowIndex) SegmentRange(v string) (start, length int, err error) {
	base, ok := ri.base[v]
	if !ok {
		return 0, 0, fmt.Errorf("schema: variable %q not present in this RowIndex: %w", v, ErrSchemaViolation)
	}

	return base, product(ri.radix[v]), nil
}

// GetPos computes the linear position of variable v's instance identified
// by indices. Fails with ErrSchemaViolation if v was not included in this
// RowIndex's variable list, and with ErrIndexDomain if indices does not
// exactly match v's declared index set or any value is out of range.
func (ri *RowIndex) GetPos(v string, indices map[string]int) (int, error) {
	base, ok := ri.base[v]
	if !ok {
		return 0, fmt.Errorf("schema: variable %q not present in this RowIndex: %w", v, ErrSchemaViolation)
	}

	plain, err := ri.schema.IndicesDictToPlain(v, indices)
	if err != nil {
		return 0, err
	}

	mult := ri.multiplier[v]
	pos := base
	for t, digit := range plain {
		pos += digit * mult[t]
	}

	return pos, nil
}

// GetPosPlain is GetPos taking an already-ordered plain index slice, for
// callers iterating via Schema.RadixMapIterVar (which already produces
// declared-order slices and so can skip the dict round-trip).
func (ri *RowIndex) GetPosPlain(v string, plain []int) (int, error) {
	base, ok := ri.base[v]
	if !ok {
		return 0, fmt.Errorf("schema: variable %q not present in this RowIndex: %w", v, ErrSchemaViolation)
	}
	radix := ri.radix[v]
	if len(plain) != len(radix) {
		return 0, fmt.Errorf("schema: variable %q expects %d indices, got %d: %w", v, len(radix), len(plain), ErrIndexDomain)
	}
	for t, digit := range plain {
		if digit < 0 || digit >= radix[t] {
			return 0, fmt.Errorf("schema: variable %q index %d=%d out of [0,%d): %w", v, t, digit, radix[t], ErrIndexDomain)
		}
	}

	mult := ri.multiplier[v]
	pos := base
	for t, digit := range plain {
		pos += digit * mult[t]
	}

	return pos, nil
}

// Vars returns the ordered variable list this RowIndex was built over.
func (ri *RowIndex) Vars() []string {
	return append([]string(nil), ri.vars...)
}
