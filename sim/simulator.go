package sim

import (
	"fmt"

	"github.com/netopt-go/scheduler/schema"
	"github.com/netopt-go/scheduler/store"
)

// containerKey addresses the shared container at node j, load category rho,
// structural interval l — the buffer every op sited at (j,rho,l) reads from
// or writes into.
type containerKey struct {
	j, rho, l int
}

// memoryKey addresses a store op's cross-interval memory container: one per
// (j,rho), shared by every l so storage persists across structural
// intervals.
type memoryKey struct {
	j, rho int
}

// Simulator runs one deterministic (modulo noise/shuffle RNG draws) pass of
// the discrete-event model: generators inject, payload ops consume/stage in
// randomized order, teardown flushes staged deltas, drops absorb residuals,
// advance. Grounded on sim.py's Simulation class, restructured around an
// explicit op-kind dispatch (op.go) instead of the Python's (partially
// unfinished) class hierarchy.
type Simulator struct {
	schema *schema.Schema
	data   *store.Interface
	clock  *clock
	cfg    *runConfig
	noise  *noiseSource
	trace  *Trace

	all        []*op
	generators []*op
	payload    []*op // transfer + store + process, shuffled together each tick
	processes  []*op
	drops      []*op
}

// kindSpec binds one operation kind to its planned-amount/capacity/fraction
// variable names, following linsmat.py's zipped (amount, intensity,
// intensity_fraction) variable triples.
type kindSpec struct {
	kind       OperationKind
	plannedVar string
	capVar     string
	fracVar    string
}

var kindSpecs = []kindSpec{
	{KindTransfer, VarTransferPlanned, "mm_psi", "m_psi"},
	{KindStore, VarStorePlanned, "mm_v", "m_v"},
	{KindProcess, VarProcessPlanned, "mm_phi", "m_phi"},
	{KindDrop, VarDropPlanned, "", ""},
	{KindGenerate, VarArrivalPlanned, "", ""},
}

// Variable names for the five planned-amount roles, shared with the lp
// package's constants in spirit but kept local since sim must not import lp
// (lp depends on schema/store only, and sim is a peer consumer of both).
const (
	VarTransferPlanned = "x"
	VarStorePlanned    = "y"
	VarProcessPlanned  = "g"
	VarDropPlanned     = "z"
	VarArrivalPlanned  = "x_eq"
)

// processedVarFor returns the "^"-suffixed realized-amount variable a
// planned-amount variable name corresponds to.
func processedVarFor(plannedVar string) string {
	return plannedVar + "^"
}

// New builds a Simulator from a schema and data store, applying opts over
// defaultRunConfig. It constructs one shared container per (j,rho,l), one
// shared memory container per (j,rho) for store ops, and one op instance
// per declared instance of x, y, g, z and x_eq.
func New(s *schema.Schema, data *store.Interface, opts ...RunOption) (*Simulator, error) {
	cfg := defaultRunConfig()
	for _, o := range opts {
		o(cfg)
	}
	if cfg.dt <= 0 {
		return nil, fmt.Errorf("sim: dt must be positive, got %g: %w", cfg.dt, ErrInvariantBroken)
	}

	clk, err := newClock(s, data)
	if err != nil {
		return nil, err
	}

	sim := &Simulator{
		schema: s,
		data:   data,
		clock:  clk,
		cfg:    cfg,
		noise:  newNoiseSource(cfg.useNoise, cfg.rng),
		trace:  newTrace(cfg.withTrace),
	}

	zero := store.NewZeroing(data)
	containers := make(map[containerKey]*Container)
	memories := make(map[memoryKey]*Container)

	containerFor := func(j, rho, l int) *Container {
		key := containerKey{j, rho, l}
		c, ok := containers[key]
		if !ok {
			c = &Container{}
			containers[key] = c
		}

		return c
	}
	memoryFor := func(j, rho int) *Container {
		key := memoryKey{j, rho}
		c, ok := memories[key]
		if !ok {
			c = &Container{}
			memories[key] = c
		}

		return c
	}

	for _, spec := range kindSpecs {
		if _, err := s.VarIndices(spec.plannedVar); err != nil {
			return nil, err
		}

		iterErr := s.RadixMapIterVar(spec.plannedVar, func(plain []int) error {
			indices, err := s.IndicesPlainToDict(spec.plannedVar, plain)
			if err != nil {
				return err
			}

			built, err := buildOp(spec, indices, plain, s, data, zero, clk, containerFor, memoryFor)
			if err != nil {
				return err
			}
			if built == nil {
				return nil
			}

			sim.all = append(sim.all, built)
			switch spec.kind {
			case KindTransfer, KindStore, KindProcess:
				sim.payload = append(sim.payload, built)
				if spec.kind == KindProcess {
					sim.processes = append(sim.processes, built)
				}
			case KindDrop:
				sim.drops = append(sim.drops, built)
			case KindGenerate:
				sim.generators = append(sim.generators, built)
			}

			return nil
		})
		if iterErr != nil {
			return nil, iterErr
		}
	}

	return sim, nil
}

// buildOp constructs one op instance, or returns (nil, nil) for a transfer
// instance with i == j (no self-transfer; excluded from the balance
// equation per lp's buildEquations, see lp/planner.go).
func buildOp(
	spec kindSpec,
	indices map[string]int,
	plain []int,
	s *schema.Schema,
	data *store.Interface,
	zero *store.Zeroing,
	clk *clock,
	containerFor func(j, rho, l int) *Container,
	memoryFor func(j, rho int) *Container,
) (*op, error) {
	j := indices["j"]
	l := indices["l"]

	if spec.kind == KindTransfer {
		i := indices["i"]
		if i == j {
			return nil, nil
		}
		rho := indices["rho"]
		planned := zero.GetPlain(spec.plannedVar, plain)

		return &op{
			identity:      opIdentity{kind: spec.kind, indices: indices, plannedVar: spec.plannedVar},
			input:         containerFor(j, rho, l),
			output:        containerFor(i, rho, l),
			processed:     &Container{},
			plannedAmount: planned,
			capacity:      zero.Get(spec.capVar, map[string]int{"j": j, "i": i, "l": l}),
			fraction:      zero.Get(spec.fracVar, map[string]int{"j": j, "i": i, "rho": rho, "l": l}),
		}, nil
	}

	rho := indices["rho"]
	planned := zero.GetPlain(spec.plannedVar, plain)

	switch spec.kind {
	case KindStore:
		return &op{
			identity:      opIdentity{kind: spec.kind, indices: indices, plannedVar: spec.plannedVar},
			input:         containerFor(j, rho, l),
			processed:     memoryFor(j, rho),
			plannedAmount: planned,
			capacity:      zero.Get(spec.capVar, map[string]int{"j": j, "l": l}),
			fraction:      zero.Get(spec.fracVar, map[string]int{"j": j, "rho": rho, "l": l}),
		}, nil
	case KindProcess:
		return &op{
			identity:      opIdentity{kind: spec.kind, indices: indices, plannedVar: spec.plannedVar},
			input:         containerFor(j, rho, l),
			processed:     &Container{},
			plannedAmount: planned,
			capacity:      zero.Get(spec.capVar, map[string]int{"j": j, "l": l}),
			fraction:      zero.Get(spec.fracVar, map[string]int{"j": j, "rho": rho, "l": l}),
		}, nil
	case KindDrop:
		return &op{
			identity:      opIdentity{kind: spec.kind, indices: indices, plannedVar: spec.plannedVar},
			input:         containerFor(j, rho, l),
			processed:     &Container{},
			plannedAmount: planned,
		}, nil
	case KindGenerate:
		return &op{
			identity:      opIdentity{kind: spec.kind, indices: indices, plannedVar: spec.plannedVar},
			input:         containerFor(j, rho, l),
			processed:     &Container{},
			plannedAmount: planned,
			intervalDur:   clk.IntervalDuration(l),
		}, nil
	default:
		return nil, nil
	}
}

// Run executes the full step loop from t=0 to clock.Duration(), then
// returns the realized quality alpha_0*processed - alpha_1*dropped. It
// also writes every op's final processed amount back into the data store
// under its "^"-suffixed variable.
func (sim *Simulator) Run() (float64, error) {
	duration := sim.clock.Duration()
	for t := 0.0; t < duration; t += sim.cfg.dt {
		l := sim.clock.AtInterval(t)
		if err := sim.step(t, l); err != nil {
			return 0, err
		}
	}

	if err := sim.registerProcessed(); err != nil {
		return 0, err
	}

	return sim.quality()
}

// Trace returns the accumulated trace points, or nil if tracing was not
// enabled via WithTrace.
func (sim *Simulator) Trace() []Point {
	return sim.trace.AsSlice()
}

func (sim *Simulator) step(t float64, l int) error {
	for _, o := range sim.generators {
		if o.identity.l() != l {
			continue
		}
		if err := o.generateBefore(sim.cfg.dt); err != nil {
			return err
		}
	}

	active := make([]*op, 0, len(sim.payload))
	for _, o := range sim.payload {
		if o.identity.l() == l {
			active = append(active, o)
		}
	}
	if sim.cfg.shuffle {
		sim.cfg.rng.Shuffle(len(active), func(i, j int) { active[i], active[j] = active[j], active[i] })
	}

	for _, o := range active {
		if err := o.payloadTick(sim.noise, sim.cfg.dt); err != nil {
			return err
		}
	}
	for _, o := range active {
		if err := o.teardown(); err != nil {
			return err
		}
	}

	for _, o := range sim.drops {
		if o.identity.l() != l {
			continue
		}
		if err := o.dropTick(); err != nil {
			return err
		}
	}

	for _, o := range active {
		sim.trace.addPoint(Point{
			T:               t,
			Variable:        o.identity.plannedVar,
			Indices:         o.identity.indices,
			ContainerAmount: o.input.Amount,
			Processed:       o.processed.Amount,
		})
	}

	return nil
}

func (sim *Simulator) registerProcessed() error {
	for _, o := range sim.all {
		processedVar := processedVarFor(o.identity.plannedVar)
		plain, err := sim.schema.IndicesDictToPlain(processedVar, o.identity.indices)
		if err != nil {
			return err
		}
		if err := sim.data.SetPlain(processedVar, o.processed.Amount, plain); err != nil {
			return err
		}
	}

	return nil
}

func (sim *Simulator) quality() (float64, error) {
	alpha0, err := sim.data.Get("alpha_0", map[string]int{})
	if err != nil {
		return 0, err
	}
	alpha1, err := sim.data.Get("alpha_1", map[string]int{})
	if err != nil {
		return 0, err
	}

	var processedSum, droppedSum float64
	for _, o := range sim.processes {
		processedSum += o.processed.Amount
	}
	for _, o := range sim.drops {
		droppedSum += o.processed.Amount
	}

	return alpha0*processedSum - alpha1*droppedSum, nil
}
