package sim

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// noiseSource draws the per-tick disturbance added to an operation's
// available intensity. Grounded on linsolv_sim.py Op.noise
// (`random.gauss(0, intensity/4)`, clamped to non-negative), replaced with
// gonum.org/v1/gonum/stat/distuv.Normal. distuv.Normal.Src expects
// golang.org/x/exp/rand.Source, so the run's shared rng is built on that
// package rather than math/rand — the injected *rand.Rand is used directly
// as distuv's Source (it already implements Uint64/Seed), keeping every
// draw — noise, op-shuffle, GA — threaded through the same seeded source
// (ga.NewPopulation hands its rng to each evaluation simulator).
type noiseSource struct {
	enabled bool
	dist    distuv.Normal
}

func newNoiseSource(enabled bool, rng *rand.Rand) *noiseSource {
	var src rand.Source
	if rng != nil {
		src = rng
	}

	return &noiseSource{enabled: enabled, dist: distuv.Normal{Src: src}}
}

// sample draws max(0, N(0, scale/4)) — scale is the intensity ceiling the
// noise perturbs around. Returns 0 when noise is disabled or scale is 0.
func (n *noiseSource) sample(scale float64) float64 {
	if !n.enabled || scale == 0 {
		return 0
	}

	n.dist.Mu = 0
	n.dist.Sigma = scale / 4
	v := n.dist.Rand()
	if v < 0 {
		v = 0
	}

	return v
}
