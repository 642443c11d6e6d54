package sim

// Point is one accumulated trace sample: time, the operation identity that
// produced it, a snapshot of its input container's amount, and its
// cumulative processed amount at that instant. Grounded on sim.py's own
// (incomplete) ut.Trace/_trace fields.
type Point struct {
	T               float64
	Variable        string
	Indices         map[string]int
	ContainerAmount float64
	Processed       float64
}

// Trace accumulates Points across a run. A nil *Trace accumulates nothing
// (addPoint is a no-op), so callers that never enable WithTrace pay no
// allocation cost on the hot GA-evaluation path.
type Trace struct {
	points []Point
}

func newTrace(enabled bool) *Trace {
	if !enabled {
		return nil
	}

	return &Trace{}
}

func (tr *Trace) addPoint(p Point) {
	if tr == nil {
		return
	}
	tr.points = append(tr.points, p)
}

// AsSlice returns the accumulated points in recording order, for the
// chart-rendering collaborator or tests.
func (tr *Trace) AsSlice() []Point {
	if tr == nil {
		return nil
	}

	return append([]Point(nil), tr.points...)
}
