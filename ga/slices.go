package ga

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/netopt-go/scheduler/schema"
)

// fractionVars is the fixed segment order a Gene concatenates: one segment
// per controllable intensity-fraction variable.
var fractionVars = []string{"m_psi", "m_v", "m_phi"}

// sliceGroups partitions a gene's row positions into the rho-slices that
// must each sum to 1: for m_psi that's every (j,i,l) fixed, varying rho;
// for m_v/m_phi every (j,l) fixed, varying rho. posToGroup maps a row
// position to its index into groups, for renormalizing just the one slice
// a mutated cell belongs to.
type sliceGroups struct {
	groups     [][]int
	posToGroup map[int]int
}

func buildSliceGroups(s *schema.Schema, row *schema.RowIndex) (*sliceGroups, error) {
	sg := &sliceGroups{posToGroup: make(map[int]int)}

	for _, v := range fractionVars {
		byKey, err := rhoGroupsForVar(s, row, v)
		if err != nil {
			return nil, err
		}
		for _, positions := range byKey {
			idx := len(sg.groups)
			sg.groups = append(sg.groups, positions)
			for _, p := range positions {
				sg.posToGroup[p] = idx
			}
		}
	}

	return sg, nil
}

// rhoGroupsForVar groups v's row positions by every index except rho.
func rhoGroupsForVar(s *schema.Schema, row *schema.RowIndex, v string) (map[string][]int, error) {
	order, err := s.VarIndices(v)
	if err != nil {
		return nil, err
	}

	rhoPos := -1
	for i, k := range order {
		if k == "rho" {
			rhoPos = i
		}
	}
	if rhoPos < 0 {
		return nil, fmt.Errorf("ga: variable %q has no rho index to normalize over: %w", v, ErrInvariantBroken)
	}

	groups := make(map[string][]int)
	err = s.RadixMapIterVar(v, func(plain []int) error {
		key := make([]int, 0, len(plain)-1)
		for i, d := range plain {
			if i != rhoPos {
				key = append(key, d)
			}
		}

		pos, err := row.GetPosPlain(v, plain)
		if err != nil {
			return err
		}

		groupKey := fmt.Sprint(key)
		groups[groupKey] = append(groups[groupKey], pos)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// normalizeGene renormalizes every rho-slice of values to sum to 1.
func normalizeGene(values []float64, sg *sliceGroups) {
	for _, positions := range sg.groups {
		normalizeSlice(values, positions)
	}
}

// normalizeSlice clamps the slice's cells to non-negative, then divides by
// their sum; an all-zero (or all-negative) slice falls back to a uniform
// 1/n split rather than dividing by zero.
func normalizeSlice(values []float64, positions []int) {
	cells := make([]float64, len(positions))
	for i, p := range positions {
		if values[p] < 0 {
			values[p] = 0
		}
		cells[i] = values[p]
	}

	sum := floats.Sum(cells)
	if sum <= 0 {
		uniform := 1.0 / float64(len(positions))
		for _, p := range positions {
			values[p] = uniform
		}

		return
	}

	for _, p := range positions {
		values[p] /= sum
	}
}
