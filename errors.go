package scheduler

import (
	"errors"

	"github.com/netopt-go/scheduler/ga"
	"github.com/netopt-go/scheduler/lp"
	"github.com/netopt-go/scheduler/orchestrator"
	"github.com/netopt-go/scheduler/schema"
	"github.com/netopt-go/scheduler/sim"
	"github.com/netopt-go/scheduler/store"
)

// ExitCode values for the CLI collaborator: 0 success, 2 schema/data
// validation error, 3 LP infeasible, 4 I/O error.
const (
	ExitSuccess         = 0
	ExitValidationError = 2
	ExitInfeasible      = 3
	ExitIOError         = 4
)

// ExitCodeFor classifies err into one of the exit codes above by walking
// its error chain against the sentinel kinds the schema/store/lp/sim/ga
// packages export. Errors outside that chain (e.g. a raw os.ReadFile
// failure surfaced by schema.LoadFile) are treated as I/O errors, since
// every entry point's first two steps are file loads.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, lp.ErrInfeasibleOrUnbounded):
		return ExitInfeasible
	case errors.Is(err, schema.ErrSchemaViolation),
		errors.Is(err, schema.ErrIndexDomain),
		errors.Is(err, store.ErrNoData),
		errors.Is(err, lp.ErrInvariantBroken),
		errors.Is(err, sim.ErrInvariantBroken),
		errors.Is(err, ga.ErrInvariantBroken),
		errors.Is(err, orchestrator.ErrNoSolution):
		return ExitValidationError
	case errors.Is(err, store.ErrIOError):
		return ExitIOError
	default:
		return ExitIOError
	}
}
