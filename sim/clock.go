package sim

import (
	"github.com/netopt-go/scheduler/schema"
	"github.com/netopt-go/scheduler/store"
)

// clock reads the `tl` interval-duration table and answers the two
// questions the step loop needs: which structural interval a given instant
// falls in, and when the run ends. Grounded on linsmat.py
// VirtHelper.t_to_l/l_to_t_bound/__init_duration and sim.py Simulation.l/
// duration. `tl` absence is fatal: clock reads it through the plain
// schema-aware Interface, not the zeroing path, so a missing entry
// propagates store.ErrNoData instead of being silently treated as 0.
type clock struct {
	bounds []int // indexBound("l") values, i.e. 0..nIntervals-1
	tl     []float64
}

func newClock(s *schema.Schema, data *store.Interface) (*clock, error) {
	nIntervals, err := s.IndexBound("l")
	if err != nil {
		return nil, err
	}

	tl := make([]float64, nIntervals)
	for l := 0; l < nIntervals; l++ {
		v, err := data.Get("tl", map[string]int{"l": l})
		if err != nil {
			return nil, err
		}
		tl[l] = v
	}

	bounds := make([]int, nIntervals)
	for i := range bounds {
		bounds[i] = i
	}

	return &clock{bounds: bounds, tl: tl}, nil
}

// Duration returns the total simulated time span, sum(tl).
func (c *clock) Duration() float64 {
	var total float64
	for _, v := range c.tl {
		total += v
	}

	return total
}

// AtInterval returns the smallest l such that t < sum(tl[0..l]), i.e. the
// structural interval containing instant t. For t >= Duration() this
// returns the final interval index len(tl)-1 rather than an out-of-range
// value, so the step loop can terminate cleanly.
func (c *clock) AtInterval(t float64) int {
	var sum float64
	for l, d := range c.tl {
		sum += d
		if t < sum {
			return l
		}
	}

	return len(c.tl) - 1
}

// IntervalDuration returns tl[l].
func (c *clock) IntervalDuration(l int) float64 {
	return c.tl[l]
}
