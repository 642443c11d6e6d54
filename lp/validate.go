package lp

import (
	"fmt"
	"math"

	"github.com/netopt-go/scheduler/schema"
)

const epsWeightSum = 1e-6

func sameIndexList(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// validateShapes checks the fixed index-list contract the flow-balance
// model requires of the transfer/storage/processing/drop/arrival
// variables:
//
//	variableIndices(x)    == [j, i, rho, l]
//	variableIndices(y)    == [j, rho, l]
//	variableIndices(g)    == [j, rho, l]
//	variableIndices(z)    == [j, rho, l]
//	variableIndices(x_eq) == [j, rho, l]
//	indexBound(i) == indexBound(j)
//
// Grounded on linsolv_planner.py's LinsolvPlanner.__post_init__ assertions.
func validateShapes(s *schema.Schema) error {
	xIdx, err := s.VarIndices(VarTransfer)
	if err != nil {
		return err
	}
	if !sameIndexList(xIdx, []string{"j", "i", "rho", "l"}) {
		return fmt.Errorf("lp: variable %q must be indexed [j,i,rho,l], got %v: %w", VarTransfer, xIdx, schema.ErrSchemaViolation)
	}

	for _, v := range []string{VarStore, VarProcess, VarDrop, VarArrival} {
		idx, err := s.VarIndices(v)
		if err != nil {
			return err
		}
		if !sameIndexList(idx, []string{"j", "rho", "l"}) {
			return fmt.Errorf("lp: variable %q must be indexed [j,rho,l], got %v: %w", v, idx, schema.ErrSchemaViolation)
		}
	}

	boundJ, err := s.IndexBound("j")
	if err != nil {
		return err
	}
	boundI, err := s.IndexBound("i")
	if err != nil {
		return err
	}
	if boundJ != boundI {
		return fmt.Errorf("lp: indexBound(i)=%d != indexBound(j)=%d: %w", boundI, boundJ, schema.ErrSchemaViolation)
	}

	// A capacity variable must share its bounded variable's index shape:
	// the zeroing access path (store.Zeroing) turns any shape mismatch
	// into a silent 0.0, which would otherwise pin every instance of that
	// variable to zero without surfacing a single error.
	capPairs := map[string]string{
		CapTransfer: VarTransfer,
		CapStore:    VarStore,
		CapProcess:  VarProcess,
	}
	for capVar, v := range capPairs {
		capIdx, err := s.VarIndices(capVar)
		if err != nil {
			return err
		}
		vIdx, err := s.VarIndices(v)
		if err != nil {
			return err
		}
		if !sameIndexList(capIdx, vIdx) {
			return fmt.Errorf("lp: capacity %q indices %v do not match %q indices %v: %w", capVar, capIdx, v, vIdx, schema.ErrSchemaViolation)
		}
	}

	return nil
}

// validateWeights checks alpha_0+alpha_1 == 1 and both strictly non-zero.
// An out-of-range sum is rejected rather than silently renormalized; see
// DESIGN.md for the reasoning.
func validateWeights(alpha0, alpha1 float64) error {
	if math.Abs(alpha0+alpha1-1.0) > epsWeightSum {
		return fmt.Errorf("lp: alpha_0+alpha_1=%g, want 1: %w", alpha0+alpha1, ErrInvariantBroken)
	}
	if alpha0 == 0 || alpha1 == 0 {
		return fmt.Errorf("lp: alpha_0=%g alpha_1=%g, both must be non-zero: %w", alpha0, alpha1, ErrInvariantBroken)
	}

	return nil
}
