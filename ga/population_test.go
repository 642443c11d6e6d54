package ga_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/netopt-go/scheduler/ga"
	"github.com/netopt-go/scheduler/schema"
	"github.com/netopt-go/scheduler/sim"
	"github.com/netopt-go/scheduler/store"
)

// refinerSchema builds one node, two load classes, one structural
// interval: enough rho-cells per fraction-variable slice (2) to make
// normalization and crossover/mutation non-trivial, while keeping the
// simulator side small.
func refinerSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New(
		map[string]int{"j": 1, "i": 1, "rho": 2, "l": 1},
		map[string][]string{
			"x":       {"j", "i", "rho", "l"},
			"y":       {"j", "rho", "l"},
			"g":       {"j", "rho", "l"},
			"z":       {"j", "rho", "l"},
			"x_eq":    {"j", "rho", "l"},
			"x^":      {"j", "i", "rho", "l"},
			"y^":      {"j", "rho", "l"},
			"g^":      {"j", "rho", "l"},
			"z^":      {"j", "rho", "l"},
			"x_eq^":   {"j", "rho", "l"},
			"mm_psi":  {"j", "i", "l"},
			"mm_v":    {"j", "l"},
			"mm_phi":  {"j", "l"},
			"m_psi":   {"j", "i", "rho", "l"},
			"m_v":     {"j", "rho", "l"},
			"m_phi":   {"j", "rho", "l"},
			"tl":      {"l"},
			"alpha_0": {},
			"alpha_1": {},
		},
	)
	require.NoError(t, err)

	return s
}

func rIdx(rho int) map[string]int { return map[string]int{"j": 0, "rho": rho, "l": 0} }

// refinerData builds a base store where processing capacity (mm_phi, 4 per
// step) just matches the combined arrivals of both load classes (2+2 per
// step), so how m_phi splits that capacity between rho=0 and rho=1 changes
// how much of each gets processed versus dropped before the single
// interval ends.
func refinerData(t *testing.T, s *schema.Schema, alpha0, alpha1 float64) *store.Interface {
	t.Helper()
	di := store.NewInterface(s, store.New())

	require.NoError(t, di.Set("x_eq", 8, rIdx(0)))
	require.NoError(t, di.Set("x_eq", 8, rIdx(1)))
	require.NoError(t, di.Set("tl", 4, map[string]int{"l": 0}))

	require.NoError(t, di.Set("g", 8, rIdx(0)))
	require.NoError(t, di.Set("g", 8, rIdx(1)))
	require.NoError(t, di.Set("mm_phi", 4, map[string]int{"j": 0, "l": 0}))

	require.NoError(t, di.Set("y", 0, rIdx(0)))
	require.NoError(t, di.Set("y", 0, rIdx(1)))

	require.NoError(t, di.Set("alpha_0", alpha0, map[string]int{}))
	require.NoError(t, di.Set("alpha_1", alpha1, map[string]int{}))

	return di
}

// TestPopulationNormalization covers invariant 8: after Generate and after
// every mutation/crossover, each fraction variable's rho-slice sums to 1.
func TestPopulationNormalization(t *testing.T) {
	s := refinerSchema(t)
	di := refinerData(t, s, 0.9, 0.1)

	pop, err := ga.NewPopulation(s, di, rand.New(rand.NewSource(7)), sim.WithNoise(false), sim.WithShuffle(false))
	require.NoError(t, err)

	pop.Generate(6)
	assertNormalized(t, s, pop)

	require.NoError(t, pop.EvaluateAll())
	pop.Sort()
	pop.Select()
	assertNormalized(t, s, pop)

	pop.RandomMutate(0.3)
	assertNormalized(t, s, pop)
}

// assertNormalized checks every fraction variable sums to 1 across its
// rho values. refinerSchema declares exactly one (j,i,l) combination, so
// each variable has exactly one rho-slice and summing all its positions
// is equivalent to summing the one slice.
func assertNormalized(t *testing.T, s *schema.Schema, pop *ga.Population) {
	t.Helper()

	row, err := schema.NewRowIndex(s, []string{"m_psi", "m_v", "m_phi"})
	require.NoError(t, err)

	for _, g := range pop.Genes() {
		for _, v := range []string{"m_psi", "m_v", "m_phi"} {
			var sum float64
			require.NoError(t, s.RadixMapIterVar(v, func(plain []int) error {
				pos, err := row.GetPosPlain(v, plain)
				if err != nil {
					return err
				}
				sum += g.Values[pos]

				return nil
			}))
			require.InDelta(t, 1.0, sum, 1e-4)
		}
	}
}

// TestRefinerMonotoneQuality covers invariant 9: the best quality across
// generations never decreases. Select is elitist (the prior generation's
// best gene survives unchanged into the next), and re-evaluating an
// unchanged gene under a deterministic simulator (noise and shuffle both
// disabled) reproduces the same quality, so the best can only hold or
// improve.
func TestRefinerMonotoneQuality(t *testing.T) {
	s := refinerSchema(t)
	di := refinerData(t, s, 0.9, 0.1)

	pop, err := ga.NewPopulation(s, di, rand.New(rand.NewSource(3)), sim.WithNoise(false), sim.WithShuffle(false))
	require.NoError(t, err)
	pop.Generate(8)

	var bestSoFar float64
	for gen := 0; gen < 6; gen++ {
		require.NoError(t, pop.EvaluateAll())
		pop.Sort()

		best := pop.Best()
		require.NotNil(t, best)
		if gen > 0 {
			require.GreaterOrEqual(t, best.Quality, bestSoFar-1e-9)
		}
		bestSoFar = best.Quality

		pop.Select()
		pop.RandomMutate(0.2)
	}
}

// TestRefinerRunReturnsBestStore checks the end-to-end Refiner entry point
// wires Population together and returns a usable scratch store.
func TestRefinerRunReturnsBestStore(t *testing.T) {
	s := refinerSchema(t)
	di := refinerData(t, s, 0.9, 0.1)

	refiner := ga.New(
		ga.WithPopulationSize(6),
		ga.WithGenerations(4),
		ga.WithRand(rand.New(rand.NewSource(11))),
		ga.WithSimOptions(sim.WithNoise(false), sim.WithShuffle(false)),
	)

	best, quality, err := refiner.Run(s, di)
	require.NoError(t, err)
	require.NotNil(t, best)
	require.GreaterOrEqual(t, quality, 0.0)
}
