package orchestrator

import (
	"github.com/netopt-go/scheduler/ga"
	"github.com/netopt-go/scheduler/lp"
	"github.com/netopt-go/scheduler/schema"
	"github.com/netopt-go/scheduler/store"
)

// config holds the outer-loop parameters, configured by Option. Grounded on
// ga's refinerConfig functional-option pattern.
type config struct {
	iterations  int
	refinerOpts []ga.Option
	persistPath string
}

func defaultConfig() *config {
	return &config{iterations: 20}
}

// Option configures an Orchestrator.
type Option func(*config)

// WithIterations overrides the number of outer plan/refine iterations.
func WithIterations(n int) Option {
	return func(c *config) { c.iterations = n }
}

// WithRefinerOptions passes through ga.Option values (population size,
// generations, mutation scale, simulator options) to every iteration's GA
// refiner.
func WithRefinerOptions(opts ...ga.Option) Option {
	return func(c *config) { c.refinerOpts = append(c.refinerOpts, opts...) }
}

// WithPersistPath enables a final sync of the persistent store to path via
// store.SyncFile once Run's outer loop completes. Without it, Run leaves the
// persistent store updated in memory only, letting a caller decide when (or
// whether) to flush it.
func WithPersistPath(path string) Option {
	return func(c *config) { c.persistPath = path }
}

// Orchestrator alternates lp.Planner and ga.Refiner over a scratch copy of a
// persistent data store. Grounded on orchestration.py's VirtOpt: persistent
// plays csv_data_interface's role, scratch plays ram_data_interface's.
type Orchestrator struct {
	schema     *schema.Schema
	persistent *store.Interface
	cfg        *config
}

// New builds an Orchestrator over persistent, configured by opts.
func New(s *schema.Schema, persistent *store.Interface, opts ...Option) *Orchestrator {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	return &Orchestrator{schema: s, persistent: persistent, cfg: cfg}
}

// Run executes the outer plan/refine loop: a scratch store is cloned from
// persistent once (satisfying "ensure scratch is initialized from
// persistent" — cloning is already idempotent initialization, so there is
// no separate re-init step per iteration); each iteration then solves the
// LP planner against scratch, runs the GA refiner against scratch, and
// merges the winning gene's scratch store back into the shared scratch.
// After the loop, persistent is updated from the final scratch and, if
// WithPersistPath was given, flushed to disk. Returns the updated
// persistent store and the last iteration's best quality.
func (o *Orchestrator) Run() (*store.Interface, float64, error) {
	scratch := o.persistent.Clone()

	var bestQuality float64
	for iter := 0; iter < o.cfg.iterations; iter++ {
		planner, err := lp.New(o.schema, scratch)
		if err != nil {
			return nil, 0, err
		}
		if err := planner.Solve(); err != nil {
			return nil, 0, err
		}

		refiner := ga.New(o.cfg.refinerOpts...)
		bestScratch, quality, err := refiner.Run(o.schema, scratch)
		if err != nil {
			return nil, 0, err
		}
		if bestScratch == nil {
			return nil, 0, ErrNoSolution
		}

		scratch.Update(bestScratch)
		bestQuality = quality
	}

	o.persistent.Update(scratch)
	if o.cfg.persistPath != "" {
		if err := store.SyncFile(o.cfg.persistPath, o.persistent.Store); err != nil {
			return nil, 0, err
		}
	}

	return o.persistent, bestQuality, nil
}
