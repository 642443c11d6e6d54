package scheduler_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	scheduler "github.com/netopt-go/scheduler"
	"github.com/netopt-go/scheduler/ga"
	"github.com/netopt-go/scheduler/lp"
	"github.com/netopt-go/scheduler/orchestrator"
	"github.com/netopt-go/scheduler/schema"
	"github.com/netopt-go/scheduler/sim"
	"github.com/netopt-go/scheduler/store"
)

// writeFixture writes a one-node, one-interval schema file and a data file
// with abundant capacity at every stage, returning their paths.
func writeFixture(t *testing.T) (schemaPath, dataPath string) {
	t.Helper()
	dir := t.TempDir()

	shape := struct {
		IndexBound      map[string]int      `json:"indexBound"`
		VariableIndices map[string][]string `json:"variableIndices"`
	}{
		IndexBound: map[string]int{"j": 1, "i": 1, "rho": 1, "l": 1},
		VariableIndices: map[string][]string{
			"x": {"j", "i", "rho", "l"}, "y": {"j", "rho", "l"}, "g": {"j", "rho", "l"},
			"z": {"j", "rho", "l"}, "x_eq": {"j", "rho", "l"},
			"x^": {"j", "i", "rho", "l"}, "y^": {"j", "rho", "l"}, "g^": {"j", "rho", "l"},
			"z^": {"j", "rho", "l"}, "x_eq^": {"j", "rho", "l"},
			"psi": {"j", "i", "rho", "l"}, "v_mem": {"j", "rho", "l"}, "phi": {"j", "rho", "l"},
			"mm_psi": {"j", "i", "l"}, "mm_v": {"j", "l"}, "mm_phi": {"j", "l"},
			"m_psi": {"j", "i", "rho", "l"}, "m_v": {"j", "rho", "l"}, "m_phi": {"j", "rho", "l"},
			"tl": {"l"}, "alpha_0": {}, "alpha_1": {},
		},
	}
	raw, err := json.Marshal(shape)
	require.NoError(t, err)

	schemaPath = filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(schemaPath, raw, 0o644))

	dataPath = filepath.Join(dir, "data.txt")
	data := "x_eq 0 0 0 10\n" +
		"phi 0 0 0 100\n" +
		"v_mem 0 0 0 100\n" +
		"psi 0 0 0 0 0\n" +
		"mm_phi 0 0 100\n" +
		"mm_v 0 0 100\n" +
		"mm_psi 0 0 0 0\n" +
		"m_phi 0 0 0 1\n" +
		"m_v 0 0 0 1\n" +
		"m_psi 0 0 0 0 1\n" +
		"tl 0 10\n" +
		"alpha_0 0.9\n" +
		"alpha_1 0.1\n"
	require.NoError(t, os.WriteFile(dataPath, []byte(data), 0o644))

	return schemaPath, dataPath
}

func TestSolveLPWritesPlanBackToFile(t *testing.T) {
	schemaPath, dataPath := writeFixture(t)

	require.NoError(t, scheduler.SolveLP(schemaPath, dataPath))

	s, err := schema.LoadFile(schemaPath)
	require.NoError(t, err)
	raw, err := store.LoadFile(dataPath)
	require.NoError(t, err)
	di := store.NewInterface(s, raw)

	g, err := di.Get("g", map[string]int{"j": 0, "rho": 0, "l": 0})
	require.NoError(t, err)
	require.InDelta(t, 10.0, g, 1e-6)
}

func TestSimulateReadsPlanWithoutMutatingFile(t *testing.T) {
	schemaPath, dataPath := writeFixture(t)
	require.NoError(t, scheduler.SolveLP(schemaPath, dataPath))

	before, err := os.ReadFile(dataPath)
	require.NoError(t, err)

	quality, err := scheduler.Simulate(schemaPath, dataPath, sim.WithNoise(false), sim.WithShuffle(false))
	require.NoError(t, err)
	require.InDelta(t, 9.0, quality, 1e-2)

	after, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}

func TestRunOrchestrationEndToEnd(t *testing.T) {
	schemaPath, dataPath := writeFixture(t)

	err := scheduler.RunOrchestration(schemaPath, dataPath,
		orchestrator.WithIterations(1),
		orchestrator.WithRefinerOptions(ga.WithPopulationSize(4), ga.WithGenerations(2)),
	)
	require.NoError(t, err)

	s, err := schema.LoadFile(schemaPath)
	require.NoError(t, err)
	raw, err := store.LoadFile(dataPath)
	require.NoError(t, err)
	di := store.NewInterface(s, raw)

	processed, err := di.Get("g^", map[string]int{"j": 0, "rho": 0, "l": 0})
	require.NoError(t, err)
	require.Greater(t, processed, 0.0)
}

func TestExitCodeForClassifiesErrors(t *testing.T) {
	require.Equal(t, scheduler.ExitSuccess, scheduler.ExitCodeFor(nil))
	require.Equal(t, scheduler.ExitInfeasible, scheduler.ExitCodeFor(lp.ErrInfeasibleOrUnbounded))
	require.Equal(t, scheduler.ExitValidationError, scheduler.ExitCodeFor(schema.ErrSchemaViolation))
	require.Equal(t, scheduler.ExitValidationError, scheduler.ExitCodeFor(schema.ErrIndexDomain))
	require.Equal(t, scheduler.ExitIOError, scheduler.ExitCodeFor(store.ErrIOError))
}
