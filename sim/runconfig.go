package sim

import "golang.org/x/exp/rand"

// runConfig holds the run-configuration flags a Go rewrite needs in place
// of the Python original's module-level globals (useNoise, shuffleOps),
// plus the seeded RNG and verbosity/trace flags. Grounded on
// builder/config.go's BuilderOption/rng pattern and flow/types.go's
// FlowOptions.Verbose field.
type runConfig struct {
	rng       *rand.Rand
	useNoise  bool
	shuffle   bool
	dt        float64
	verbose   bool
	withTrace bool
}

func defaultRunConfig() *runConfig {
	return &runConfig{
		rng:      rand.New(rand.NewSource(1)),
		useNoise: true,
		shuffle:  true,
		dt:       1,
	}
}

// RunOption configures a Simulator.
type RunOption func(*runConfig)

// WithSeed seeds a fresh *rand.Rand from seed, following builder.WithSeed.
func WithSeed(seed uint64) RunOption {
	return func(c *runConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects a caller-owned *rand.Rand, following builder.WithRand —
// lets callers (the GA, tests) share one rng instance across subsystems.
func WithRand(r *rand.Rand) RunOption {
	return func(c *runConfig) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithNoise toggles Gaussian noise sampling (useNoise).
func WithNoise(enabled bool) RunOption {
	return func(c *runConfig) { c.useNoise = enabled }
}

// WithShuffle toggles randomized payload-op ordering within a tick
// (shuffleOps).
func WithShuffle(enabled bool) RunOption {
	return func(c *runConfig) { c.shuffle = enabled }
}

// WithDt overrides the step size (default 1).
func WithDt(dt float64) RunOption {
	return func(c *runConfig) { c.dt = dt }
}

// WithVerbose sets the run configuration's verbose flag. The simulator
// does not read the flag and writes no progress log.
func WithVerbose(enabled bool) RunOption {
	return func(c *runConfig) { c.verbose = enabled }
}

// WithTrace enables trace-point accumulation: off by default to avoid its
// cost on the GA's hot evaluation path.
func WithTrace(enabled bool) RunOption {
	return func(c *runConfig) { c.withTrace = enabled }
}
