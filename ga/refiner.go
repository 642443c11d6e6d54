package ga

import (
	"golang.org/x/exp/rand"

	"github.com/netopt-go/scheduler/schema"
	"github.com/netopt-go/scheduler/sim"
	"github.com/netopt-go/scheduler/store"
)

// refinerConfig holds the genetic-search parameters, configured by
// Option. Grounded on builder/config.go's functional-option pattern.
type refinerConfig struct {
	populationSize int
	generations    int
	mutationScale  float64
	rng            *rand.Rand
	simOpts        []sim.RunOption
}

func defaultRefinerConfig() *refinerConfig {
	return &refinerConfig{
		populationSize: 20,
		generations:    10,
		mutationScale:  0.2,
		rng:            rand.New(rand.NewSource(1)),
	}
}

// Option configures a Refiner.
type Option func(*refinerConfig)

// WithPopulationSize overrides the number of genes per generation.
func WithPopulationSize(n int) Option {
	return func(c *refinerConfig) { c.populationSize = n }
}

// WithGenerations overrides the number of evolution rounds.
func WithGenerations(n int) Option {
	return func(c *refinerConfig) { c.generations = n }
}

// WithMutationScale overrides the per-cell mutation perturbation scale.
func WithMutationScale(scale float64) Option {
	return func(c *refinerConfig) { c.mutationScale = scale }
}

// WithRand injects a caller-owned *rand.Rand, shared across the
// population's random draws.
func WithRand(r *rand.Rand) Option {
	return func(c *refinerConfig) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithSimOptions passes through sim.RunOption values (e.g. sim.WithNoise,
// sim.WithShuffle) to every gene's evaluation simulator.
func WithSimOptions(opts ...sim.RunOption) Option {
	return func(c *refinerConfig) { c.simOpts = append(c.simOpts, opts...) }
}

// Refiner runs the genetic search over a fixed number of generations,
// tracking the best quality seen so far, and returns a callable result:
// the best gene's scratch data store, ready for a caller to merge back
// into the persistent store.
type Refiner struct {
	cfg *refinerConfig
}

// New builds a Refiner from opts over defaultRefinerConfig.
func New(opts ...Option) *Refiner {
	cfg := defaultRefinerConfig()
	for _, o := range opts {
		o(cfg)
	}

	return &Refiner{cfg: cfg}
}

// Run evolves a population seeded from base's schema, returning the best
// gene of the final generation: its scratch data store and its quality.
// No per-generation quality history is kept.
func (r *Refiner) Run(s *schema.Schema, base *store.Interface) (*store.Interface, float64, error) {
	pop, err := NewPopulation(s, base, r.cfg.rng, r.cfg.simOpts...)
	if err != nil {
		return nil, 0, err
	}

	pop.Generate(r.cfg.populationSize)

	var bestQuality float64
	for gen := 0; gen < r.cfg.generations; gen++ {
		if err := pop.EvaluateAll(); err != nil {
			return nil, 0, err
		}
		pop.Sort()

		if best := pop.Best(); best != nil && (gen == 0 || best.Quality > bestQuality) {
			bestQuality = best.Quality
		}

		if gen < r.cfg.generations-1 {
			pop.Select()
			pop.RandomMutate(r.cfg.mutationScale)
		}
	}

	best := pop.Best()
	if best == nil {
		return base, 0, nil
	}

	return pop.BestStore(), best.Quality, nil
}
