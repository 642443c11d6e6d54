// Package sim runs the discrete-event simulation: per-tick evolution of
// transfer/store/process/drop/generate operations over shared containers,
// under noise and capacity limits, yielding a quality score. Grounded on
// original_source/twoopt/sim/linsolv_sim.py and sim/sim.py, restructured
// around an explicit OperationKind tagged union instead of the Python
// class hierarchy.
package sim

import "errors"

// ErrInvariantBroken is returned when a container would go negative — a
// programming error, never a recoverable condition.
var ErrInvariantBroken = errors.New("sim: invariant broken")
