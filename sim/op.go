package sim

// OperationKind tags the five operation variants the simulator dispatches
// over: a tagged union with a single step dispatcher, replacing the Python
// original's class hierarchy (core.Op/TransferOp/MemorizeOp/ProcessOp/
// DropOp/GeneratorOp in sim/linsolv_sim.py) to avoid virtual dispatch on
// the hot per-tick path.
type OperationKind int

const (
	KindTransfer OperationKind = iota
	KindStore
	KindProcess
	KindDrop
	KindGenerate
)

func (k OperationKind) String() string {
	switch k {
	case KindTransfer:
		return "transfer"
	case KindStore:
		return "store"
	case KindProcess:
		return "process"
	case KindDrop:
		return "drop"
	case KindGenerate:
		return "generate"
	default:
		return "unknown"
	}
}

// opIdentity records how an operation is addressed: its kind, its full
// index tuple, and the planned-amount variable name (used to look up the
// realized/"^" counterpart and for tracing). Grounded on linsolv_sim.py's
// OpIdentity dataclass, flattened to the fields this model actually needs.
type opIdentity struct {
	kind       OperationKind
	indices    map[string]int
	plannedVar string
}

func (id opIdentity) l() int { return id.indices["l"] }

// op is one operation instance: an identity, the containers it touches,
// and the planned/capacity/fraction values read once at construction
// (valid for the lifetime of one simulation run — the GA always
// constructs a fresh Simulator per gene evaluation, so fractions never
// change mid-run). Grounded on linsolv_sim.py's Op/OpState dataclasses.
type op struct {
	identity opIdentity

	input     *Container
	output    *Container // transfer only; nil otherwise
	processed *Container // own, except Store, whose processed container is shared across l for fixed (j,rho)

	plannedAmount float64
	capacity      float64 // mm_psi / mm_v / mm_phi; 0 for drop/generate
	fraction      float64 // m_psi / m_v / m_phi; 0 for drop/generate
	intervalDur   float64 // tl[l]; generate only

	staged float64 // transfer/store: computed at tick, applied at teardown
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// generateBefore injects up to planned/tl[l]*dt into the input container,
// never exceeding the remaining planned amount. Grounded on sim.py
// GeneratorOp.on_tick_before, changed from an overwriting assignment to an
// accumulating Add so a partially-drained container from a prior tick is
// never silently discarded.
func (o *op) generateBefore(dt float64) error {
	remaining := o.plannedAmount - o.processed.Amount
	if remaining <= 0 {
		return nil
	}

	amount := remaining
	if o.intervalDur > 0 {
		perStep := o.plannedAmount / o.intervalDur * dt
		if perStep < amount {
			amount = perStep
		}
	}
	if amount < 0 {
		amount = 0
	}

	if err := o.input.Add(amount); err != nil {
		return err
	}

	return o.processed.Add(amount)
}

// payloadTick computes this tick's delta for a transfer/store/process op
// and applies it to the input container immediately; transfer and store
// stage the delta for teardown to credit to their output/processed
// container, process credits it immediately (it has no output to flush).
func (o *op) payloadTick(noise *noiseSource, dt float64) error {
	switch o.identity.kind {
	case KindTransfer:
		return o.tickTransfer(noise, dt)
	case KindStore:
		return o.tickStore(noise, dt)
	case KindProcess:
		return o.tickProcess(noise, dt)
	default:
		return nil
	}
}

// tickTransfer: sender's input container loses the delta now; the
// receiver's container and this op's own processed total are credited at
// teardown. Grounded on linsolv_sim.py TransferOp.on_tick.
func (o *op) tickTransfer(noise *noiseSource, dt float64) error {
	remaining := o.plannedAmount - o.processed.Amount
	scale := o.capacity * o.fraction
	upper := (scale + noise.sample(scale)) * dt

	avail := remaining
	if o.input.Amount < avail {
		avail = o.input.Amount
	}
	avail = clampRange(avail, 0, upper)

	if err := o.input.Add(-avail); err != nil {
		return err
	}
	o.staged = avail

	return nil
}

// tickStore: like transfer, but may go negative (a refund of previously
// stashed amount back into the pipeline) down to -processed and never
// beyond what is currently in the input container. Grounded on
// linsolv_sim.py MemorizeOp, whose lower intensity is
// -upper_capacity*fraction.
func (o *op) tickStore(noise *noiseSource, dt float64) error {
	remaining := o.plannedAmount - o.processed.Amount
	scale := o.capacity * o.fraction
	upper := (scale + noise.sample(scale)) * dt
	lower := -(scale + noise.sample(scale)) * dt

	avail := clampRange(remaining, lower, upper)
	avail = clampRange(avail, -o.processed.Amount, o.input.Amount)

	if err := o.input.Add(-avail); err != nil {
		return err
	}
	o.staged = avail

	return nil
}

// tickProcess: no output container, so the processed total is credited
// immediately rather than staged for teardown. Grounded on
// linsolv_sim.py ProcessOp.on_tick.
func (o *op) tickProcess(noise *noiseSource, dt float64) error {
	remaining := o.plannedAmount - o.processed.Amount
	scale := o.capacity * o.fraction
	upper := (scale + noise.sample(scale)) * dt

	avail := remaining
	if o.input.Amount < avail {
		avail = o.input.Amount
	}
	avail = clampRange(avail, 0, upper)

	if err := o.input.Add(-avail); err != nil {
		return err
	}

	return o.processed.Add(avail)
}

// teardown flushes a transfer/store op's staged delta into its
// output/processed container. A no-op for process/drop/generate.
func (o *op) teardown() error {
	switch o.identity.kind {
	case KindTransfer:
		if err := o.output.Add(o.staged); err != nil {
			return err
		}

		return o.processed.Add(o.staged)
	case KindStore:
		return o.processed.Add(o.staged)
	default:
		return nil
	}
}

// dropTick moves the entire residual of the input container into
// processed — unlimited intensity. Grounded on linsolv_sim.py
// DropOp.on_tick_after.
func (o *op) dropTick() error {
	amount := o.input.Amount
	if err := o.input.Add(-amount); err != nil {
		return err
	}

	return o.processed.Add(amount)
}
