package lp

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/netopt-go/scheduler/schema"
	"github.com/netopt-go/scheduler/store"
)

// Variable and capacity names fixed by the flow-balance model.
const (
	VarTransfer = "x"    // [j, i, rho, l]
	VarStore    = "y"    // [j, rho, l]
	VarProcess  = "g"    // [j, rho, l]
	VarDrop     = "z"    // [j, rho, l]
	VarArrival  = "x_eq" // [j, rho, l]

	CapTransfer = "psi"   // cap(x)
	CapStore    = "v_mem" // cap(y)
	CapProcess  = "phi"   // cap(g)

	WeightProcessed = "alpha_0" // objective weight on g (maximize -> minimize -alpha_0*g)
	WeightDropped   = "alpha_1" // objective weight on z (minimize alpha_1*z)
)

var capOf = map[string]string{
	VarTransfer: CapTransfer,
	VarStore:    CapStore,
	VarProcess:  CapProcess,
}

// Planner builds and solves the flow-balance LP for one data snapshot,
// reading arrivals/capacities/weights through a store.Interface and writing
// the optimal x/y/g/z instances back into it. Grounded on
// original_source/twoopt/linsolv_planner.py's LinsolvPlanner.
type Planner struct {
	schema *schema.Schema
	data   *store.Interface
	zero   *store.Zeroing
	row    *schema.RowIndex // over [y, x, z, g]: the column contract the equality matrix and bounds share
}

// New validates s against the LP's fixed shape contract and builds a
// Planner reading/writing through data.
func New(s *schema.Schema, data *store.Interface) (*Planner, error) {
	if err := validateShapes(s); err != nil {
		return nil, err
	}

	row, err := schema.NewRowIndex(s, []string{VarStore, VarTransfer, VarDrop, VarProcess})
	if err != nil {
		return nil, err
	}

	return &Planner{
		schema: s,
		data:   data,
		zero:   store.NewZeroing(data),
		row:    row,
	}, nil
}

// RowIndex exposes the planner's [y,x,z,g] column layout, e.g. for
// translating the simplex solution back to named positions in tests.
func (p *Planner) RowIndex() *schema.RowIndex {
	return p.row
}

// EqualityMatrix returns the flow-balance system's left-hand side and
// right-hand side: one row per (j,rho,l) instance of x_eq, p.row.RowLen()
// columns. Exposed for inspection and invariant tests.
//
// Row equation:
//
//	g[j,rho,l] + y[j,rho,l] - y[j,rho,l-1]*[l>0] + z[j,rho,l]
//	  + sum_i x[j,i,rho,l] - sum_i x[i,j,rho,l] = x_eq[j,rho,l]
func (p *Planner) EqualityMatrix() (*mat.Dense, []float64, error) {
	return p.buildEquations()
}

func (p *Planner) buildEquations() (*mat.Dense, []float64, error) {
	boundI, err := p.schema.IndexBound("i")
	if err != nil {
		return nil, nil, err
	}
	L := p.row.RowLen()

	var rows [][]float64
	var rhs []float64

	err = p.schema.RadixMapIterVar(VarArrival, func(plain []int) error {
		j, rho, l := plain[0], plain[1], plain[2]
		vec := make([]float64, L)

		gPos, err := p.row.GetPosPlain(VarProcess, []int{j, rho, l})
		if err != nil {
			return err
		}
		vec[gPos] += 1

		yPos, err := p.row.GetPosPlain(VarStore, []int{j, rho, l})
		if err != nil {
			return err
		}
		vec[yPos] += 1

		if l > 0 {
			yPrevPos, err := p.row.GetPosPlain(VarStore, []int{j, rho, l - 1})
			if err != nil {
				return err
			}
			vec[yPrevPos] -= 1
		}

		zPos, err := p.row.GetPosPlain(VarDrop, []int{j, rho, l})
		if err != nil {
			return err
		}
		vec[zPos] += 1

		for i := 0; i < boundI; i++ {
			if i == j {
				continue
			}
			outPos, err := p.row.GetPosPlain(VarTransfer, []int{j, i, rho, l})
			if err != nil {
				return err
			}
			vec[outPos] += 1

			inPos, err := p.row.GetPosPlain(VarTransfer, []int{i, j, rho, l})
			if err != nil {
				return err
			}
			vec[inPos] -= 1
		}

		rows = append(rows, vec)
		rhs = append(rhs, p.zero.GetPlain(VarArrival, plain))

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	A := mat.NewDense(len(rows), L, nil)
	for i, r := range rows {
		A.SetRow(i, r)
	}

	return A, rhs, nil
}

// bound holds one variable instance's upper bound for the solver; lower is
// always 0 for every variable.
type bound struct {
	pos   int
	upper float64 // math.Inf(1) for z
}

func (p *Planner) buildBounds() ([]bound, error) {
	var bounds []bound

	for _, v := range []string{VarTransfer, VarStore, VarProcess} {
		capVar := capOf[v]
		err := p.schema.RadixMapIterVar(v, func(plain []int) error {
			pos, err := p.row.GetPosPlain(v, plain)
			if err != nil {
				return err
			}
			bounds = append(bounds, bound{pos: pos, upper: p.zero.GetPlain(capVar, plain)})

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	err := p.schema.RadixMapIterVar(VarDrop, func(plain []int) error {
		pos, err := p.row.GetPosPlain(VarDrop, plain)
		if err != nil {
			return err
		}
		bounds = append(bounds, bound{pos: pos, upper: math.Inf(1)})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return bounds, nil
}

// buildObjective returns c such that minimizing c.x is equivalent to
// maximizing alpha_0*sum(g) - alpha_1*sum(z): c[pos(g)] = -alpha_0,
// c[pos(z)] = +alpha_1, 0 elsewhere.
func (p *Planner) buildObjective(alpha0, alpha1 float64) ([]float64, error) {
	L := p.row.RowLen()
	c := make([]float64, L)

	err := p.schema.RadixMapIterVar(VarProcess, func(plain []int) error {
		pos, err := p.row.GetPosPlain(VarProcess, plain)
		if err != nil {
			return err
		}
		c[pos] -= alpha0

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.schema.RadixMapIterVar(VarDrop, func(plain []int) error {
		pos, err := p.row.GetPosPlain(VarDrop, plain)
		if err != nil {
			return err
		}
		c[pos] += alpha1

		return nil
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Solve builds the equality system, bounds and objective from the current
// data snapshot, runs the two-phase simplex, and writes the resulting
// x/y/g/z instances back into data. Returns ErrInfeasibleOrUnbounded if no
// optimum exists.
func (p *Planner) Solve() error {
	alpha0, err := p.data.Get(WeightProcessed, map[string]int{})
	if err != nil {
		return err
	}
	alpha1, err := p.data.Get(WeightDropped, map[string]int{})
	if err != nil {
		return err
	}
	if err := validateWeights(alpha0, alpha1); err != nil {
		return err
	}

	A, b, err := p.buildEquations()
	if err != nil {
		return err
	}
	bounds, err := p.buildBounds()
	if err != nil {
		return err
	}
	c, err := p.buildObjective(alpha0, alpha1)
	if err != nil {
		return err
	}

	x, status := solveBounded(A, b, c, bounds, p.row.RowLen())
	if status != statusOptimal {
		return ErrInfeasibleOrUnbounded
	}

	for _, v := range []string{VarTransfer, VarStore, VarProcess, VarDrop} {
		err := p.schema.RadixMapIterVar(v, func(plain []int) error {
			pos, err := p.row.GetPosPlain(v, plain)
			if err != nil {
				return err
			}

			return p.data.SetPlain(v, x[pos], plain)
		})
		if err != nil {
			return err
		}
	}

	return nil
}
