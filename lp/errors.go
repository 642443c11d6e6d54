// Package lp builds the flow-balance LP (equality matrix, per-variable
// bounds, objective) from a schema.Schema and store.Interface, solves it
// with a hand-written two-phase simplex over gonum/mat.Dense, and writes
// the result back into the store. Grounded line-for-line on
// original_source/twoopt/linsolv_planner.py's LinsolvPlanner.
package lp

import "errors"

var (
	// ErrInfeasibleOrUnbounded is returned when the simplex solver cannot
	// find an optimal basic feasible solution: either no point satisfies
	// the equality/bound system (infeasible), or the objective is
	// unbounded in the feasible direction.
	ErrInfeasibleOrUnbounded = errors.New("lp: infeasible or unbounded")

	// ErrInvariantBroken is returned when input data violates a numeric
	// invariant the planner requires to proceed, e.g. alpha_0+alpha_1 != 1
	// or either weight being zero.
	ErrInvariantBroken = errors.New("lp: invariant broken")
)
