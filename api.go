package scheduler

import (
	"github.com/netopt-go/scheduler/lp"
	"github.com/netopt-go/scheduler/orchestrator"
	"github.com/netopt-go/scheduler/schema"
	"github.com/netopt-go/scheduler/sim"
	"github.com/netopt-go/scheduler/store"
)

// RunOrchestration loads schemaPath and dataPath, alternates the LP planner
// and GA refiner over a scratch copy (orchestrator.Orchestrator.Run), and
// syncs the resulting persistent store back to dataPath. opts may override
// the iteration count, refiner configuration, or the persisted path itself
// (a later WithPersistPath wins over the default set here).
func RunOrchestration(schemaPath, dataPath string, opts ...orchestrator.Option) error {
	s, di, err := loadStore(schemaPath, dataPath)
	if err != nil {
		return err
	}

	allOpts := append([]orchestrator.Option{orchestrator.WithPersistPath(dataPath)}, opts...)
	orch := orchestrator.New(s, di, allOpts...)

	_, _, err = orch.Run()

	return err
}

// SolveLP loads schemaPath and dataPath, runs the LP planner once, and
// syncs the planned amounts (x, y, g, z) back to dataPath.
func SolveLP(schemaPath, dataPath string) error {
	s, di, err := loadStore(schemaPath, dataPath)
	if err != nil {
		return err
	}

	planner, err := lp.New(s, di)
	if err != nil {
		return err
	}
	if err := planner.Solve(); err != nil {
		return err
	}

	return store.SyncFile(dataPath, di.Store)
}

// Simulate loads schemaPath and dataPath, runs one simulator pass against
// the loaded data (without writing back: a simulation run is a read-only
// evaluation of whatever plan is already on disk), and returns its quality.
func Simulate(schemaPath, dataPath string, opts ...sim.RunOption) (float64, error) {
	s, di, err := loadStore(schemaPath, dataPath)
	if err != nil {
		return 0, err
	}

	simulator, err := sim.New(s, di, opts...)
	if err != nil {
		return 0, err
	}

	return simulator.Run()
}

func loadStore(schemaPath, dataPath string) (*schema.Schema, *store.Interface, error) {
	s, err := schema.LoadFile(schemaPath)
	if err != nil {
		return nil, nil, err
	}

	raw, err := store.LoadFile(dataPath)
	if err != nil {
		return nil, nil, err
	}

	return s, store.NewInterface(s, raw), nil
}
