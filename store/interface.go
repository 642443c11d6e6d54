package store

import (
	"fmt"

	"github.com/netopt-go/scheduler/schema"
)

// Interface is a schema-aware view over a Store: it accepts the same named
// {indexName: value} maps the rest of the model speaks in, translating them
// to/from plain Key positions via schema.Schema. This mirrors linsmat.py's
// DataInterface wrapping a bare provider dict.
type Interface struct {
	Schema *schema.Schema
	Store  *Store
}

// NewInterface pairs a Schema with a backing Store.
func NewInterface(s *schema.Schema, backing *Store) *Interface {
	if backing == nil {
		backing = New()
	}

	return &Interface{Schema: s, Store: backing}
}

// Get returns the value of variable at indices, or ErrNoData if absent.
func (di *Interface) Get(variable string, indices map[string]int) (float64, error) {
	plain, err := di.Schema.IndicesDictToPlain(variable, indices)
	if err != nil {
		return 0, err
	}

	return di.Store.Get(Key{Var: variable, Indices: plain})
}

// GetPlain is Get taking an already-ordered index slice.
func (di *Interface) GetPlain(variable string, plain []int) (float64, error) {
	if _, err := di.Schema.IndicesPlainToDict(variable, plain); err != nil {
		return 0, err
	}

	return di.Store.Get(Key{Var: variable, Indices: append([]int(nil), plain...)})
}

// Set stores value for variable at indices.
func (di *Interface) Set(variable string, value float64, indices map[string]int) error {
	plain, err := di.Schema.IndicesDictToPlain(variable, indices)
	if err != nil {
		return err
	}
	di.Store.Set(Key{Var: variable, Indices: plain}, value)

	return nil
}

// SetPlain is Set taking an already-ordered index slice.
func (di *Interface) SetPlain(variable string, value float64, plain []int) error {
	if _, err := di.Schema.IndicesPlainToDict(variable, plain); err != nil {
		return err
	}
	di.Store.Set(Key{Var: variable, Indices: append([]int(nil), plain...)}, value)

	return nil
}

// Clone returns an Interface backed by a deep copy of the current store,
// sharing the (immutable) Schema. Grounded on
// DataInterface.clone_as_dict_ram in linsmat.py: the GA's per-gene scratch
// evaluation and the orchestrator's scratch/persistent split both need an
// independent, mutable copy of the current data.
func (di *Interface) Clone() *Interface {
	return &Interface{Schema: di.Schema, Store: di.Store.Clone()}
}

// CloneAsRAM is an alias for Clone, named for parity with linsmat.py's
// DataInterface.clone_as_dict_ram (the store here is always RAM-backed, so
// cloning is already "as RAM").
func (di *Interface) CloneAsRAM() *Interface {
	return di.Clone()
}

// Update overwrites every entry from other into di (linsmat.py
// DataInterface.update).
func (di *Interface) Update(other *Interface) {
	di.Store.Update(other.Store)
}

func (di *Interface) String() string {
	return fmt.Sprintf("Interface{len=%d}", di.Store.Len())
}
