package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Key identifies one scalar entry: a variable name and its ordered integer
// indices, e.g. {"x", []int{0, 1, 2, 3}} for x[j=0,i=1,rho=2,l=3].
type Key struct {
	Var     string
	Indices []int
}

// encode produces a stable map key for Key. Variable names are strings and
// indices are non-negative ints, so a NUL-joined string never collides
// between distinct keys.
func (k Key) encode() string {
	var b strings.Builder
	b.WriteString(k.Var)
	for _, i := range k.Indices {
		b.WriteByte(0)
		b.WriteString(strconv.Itoa(i))
	}

	return b.String()
}

func (k Key) String() string {
	parts := make([]string, len(k.Indices))
	for i, v := range k.Indices {
		parts[i] = strconv.Itoa(v)
	}

	return fmt.Sprintf("%s(%s)", k.Var, strings.Join(parts, ","))
}

// Row pairs a Key with its stored value, as returned by Iter.
type Row struct {
	Key   Key
	Value float64
}

// Store is a keyed (variable, indices...) -> scalar map with an explicit,
// non-defaulting Get: a missing key is ErrNoData, never silently 0. Use
// Defaulting or Zeroing (in this package) to wrap a Store with a tolerant
// access path.
type Store struct {
	data map[string]Row
}

// New returns an empty, in-memory Store.
func New() *Store {
	return &Store{data: make(map[string]Row)}
}

// Get returns the value at key, or ErrNoData if absent.
func (s *Store) Get(key Key) (float64, error) {
	row, ok := s.data[key.encode()]
	if !ok {
		return 0, fmt.Errorf("store: %s: %w", key, ErrNoData)
	}

	return row.Value, nil
}

// Set stores value at key, creating or overwriting the entry.
func (s *Store) Set(key Key, value float64) {
	s.data[key.encode()] = Row{Key: key, Value: value}
}

// Iter returns every stored row. Order is unspecified; callers that need
// determinism should sort the result, e.g. via SortedRows.
func (s *Store) Iter() []Row {
	out := make([]Row, 0, len(s.data))
	for _, row := range s.data {
		out = append(out, row)
	}

	return out
}

// SortedRows returns Iter's result sorted by (Var, Indices...) for
// reproducible output, e.g. in tests and persistence writes that want
// byte-stable files.
func SortedRows(rows []Row) []Row {
	out := append([]Row(nil), rows...)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		if a.Var != b.Var {
			return a.Var < b.Var
		}
		for k := 0; k < len(a.Indices) && k < len(b.Indices); k++ {
			if a.Indices[k] != b.Indices[k] {
				return a.Indices[k] < b.Indices[k]
			}
		}

		return len(a.Indices) < len(b.Indices)
	})

	return out
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	return len(s.data)
}

// Clone returns a deep copy of s, following core/methods_clone.go's
// snapshot-then-copy idiom: the clone shares no backing storage with s, so
// mutating one never affects the other.
func (s *Store) Clone() *Store {
	cp := &Store{data: make(map[string]Row, len(s.data))}
	for k, v := range s.data {
		idx := append([]int(nil), v.Key.Indices...)
		cp.data[k] = Row{Key: Key{Var: v.Key.Var, Indices: idx}, Value: v.Value}
	}

	return cp
}

// Update overwrites every key present in other into s (linsmat.py
// DataInterface.update).
func (s *Store) Update(other *Store) {
	for _, row := range other.Iter() {
		s.Set(row.Key, row.Value)
	}
}
