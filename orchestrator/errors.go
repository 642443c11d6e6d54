// Package orchestrator alternates the LP planner and the GA refiner over a
// scratch copy of a persistent data store, committing the winning scratch
// back after each outer iteration and flushing the persistent store exactly
// once when the whole run completes. Grounded on
// original_source/twoopt/orchestration.py's VirtOpt.run.
package orchestrator

import "errors"

// ErrNoSolution is returned when an outer iteration's GA refiner produces no
// evaluated gene to merge (a refiner run with zero generations, whose best
// gene was never scored), which should not happen under any valid
// configuration but is guarded against rather than assumed.
var ErrNoSolution = errors.New("orchestrator: refiner produced no solution")
