package lp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Status is the simplex solver's terminal condition.
type Status int

const (
	statusOptimal Status = iota
	statusInfeasible
	statusUnbounded
)

const (
	simplexEps     = 1e-9
	simplexMaxIter = 20000
)

// solveBounded solves min c.x s.t. A x = b, x >= 0, for the L "real"
// columns, with every bound in bounds whose upper is finite folded into an
// extra equality row x[pos]+slack = upper. z's unbounded-above instances
// (bound.upper = +Inf) need no such row: plain non-negativity already
// matches the [0, +Inf) bound for z. Grounded on
// linsolv_planner.py's LinsolvPlanner.solve, reformulating the LP's
// upper-bounded variables as explicit slack rows so the inner solver only
// ever has to handle the textbook non-negative-variable case.
func solveBounded(A *mat.Dense, b []float64, c []float64, bounds []bound, L int) ([]float64, Status) {
	mBal, _ := A.Dims()

	var slackRows []bound
	for _, bd := range bounds {
		if !math.IsInf(bd.upper, 1) {
			slackRows = append(slackRows, bd)
		}
	}

	n := L + len(slackRows)
	m := mBal + len(slackRows)

	ext := mat.NewDense(m, n, nil)
	rhs := make([]float64, m)
	for i := 0; i < mBal; i++ {
		row := ext.RawRowView(i)
		copy(row[:L], A.RawRowView(i))
		rhs[i] = b[i]
	}
	for k, bd := range slackRows {
		r := mBal + k
		row := ext.RawRowView(r)
		row[bd.pos] = 1
		row[L+k] = 1
		rhs[r] = bd.upper
	}

	cExt := make([]float64, n)
	copy(cExt, c)

	x, status := twoPhaseSimplex(ext, rhs, cExt)
	if status != statusOptimal {
		return nil, status
	}

	return x[:L], statusOptimal
}

// twoPhaseSimplex solves min c.x s.t. A x = b, x >= 0 with a dense tableau
// and Bland's anti-cycling pivoting rule throughout (both entering-column
// and leaving-row ties break on smallest column/basis index). Phase 1
// drives an artificial variable per row to zero to find an initial basic
// feasible solution; phase 2 then minimizes the real objective with the
// artificial columns excluded from re-entering the basis.
func twoPhaseSimplex(A *mat.Dense, b []float64, c []float64) ([]float64, Status) {
	m, n := A.Dims()
	total := n + m + 1
	last := total - 1

	T := mat.NewDense(m, total, nil)
	basis := make([]int, m)
	for i := 0; i < m; i++ {
		sign := 1.0
		if b[i] < 0 {
			sign = -1.0
		}
		row := T.RawRowView(i)
		for j := 0; j < n; j++ {
			row[j] = sign * A.At(i, j)
		}
		row[n+i] = 1
		row[last] = sign * b[i]
		basis[i] = n + i
	}

	// Phase 1: minimize sum of artificials. Reduced-cost row obj[k]
	// represents (cost_k - z_k); optimal when every entry is >= -eps.
	obj := make([]float64, total)
	for j := n; j < n+m; j++ {
		obj[j] = 1
	}
	for i := 0; i < m; i++ {
		row := T.RawRowView(i)
		for k := 0; k < total; k++ {
			obj[k] -= row[k]
		}
	}

	if status := runSimplex(T, obj, basis, 0, n+m); status != statusOptimal {
		return nil, status
	}
	if -obj[last] > 1e-6 {
		return nil, statusInfeasible
	}

	// Any artificial still basic must have value 0 (feasible); pivot it
	// out onto a structural column where possible so phase 2 never has to
	// reason about artificial basic variables.
	for i := 0; i < m; i++ {
		if basis[i] < n {
			continue
		}
		row := T.RawRowView(i)
		for j := 0; j < n; j++ {
			if math.Abs(row[j]) > simplexEps {
				pivot(T, obj, basis, i, j)
				break
			}
		}
	}

	// Phase 2: minimize the real objective. Artificial columns (index
	// >= n) are never offered as entering candidates, so their cost is
	// irrelevant and left at 0.
	obj2 := make([]float64, total)
	copy(obj2[:n], c)
	bcost := make([]float64, m)
	for i, bi := range basis {
		if bi < n {
			bcost[i] = c[bi]
		}
	}
	for j := 0; j < n; j++ {
		v := obj2[j]
		for i := 0; i < m; i++ {
			v -= bcost[i] * T.At(i, j)
		}
		obj2[j] = v
	}
	v := obj2[last]
	for i := 0; i < m; i++ {
		v -= bcost[i] * T.At(i, last)
	}
	obj2[last] = v

	if status := runSimplex(T, obj2, basis, 0, n); status != statusOptimal {
		return nil, status
	}

	x := make([]float64, n)
	for i := 0; i < m; i++ {
		if basis[i] < n {
			x[basis[i]] = T.At(i, last)
		}
	}

	return x, statusOptimal
}

// runSimplex repeatedly pivots T/obj/basis until no entering column remains
// in [lo, hi), returning statusOptimal, or statusUnbounded if some
// negative-reduced-cost column has no valid leaving row.
func runSimplex(T *mat.Dense, obj []float64, basis []int, lo, hi int) Status {
	m, total := T.Dims()
	last := total - 1

	for iter := 0; iter < simplexMaxIter; iter++ {
		q := -1
		for j := lo; j < hi; j++ {
			if obj[j] < -simplexEps {
				q = j
				break
			}
		}
		if q == -1 {
			return statusOptimal
		}

		r := -1
		var bestRatio float64
		for i := 0; i < m; i++ {
			a := T.At(i, q)
			if a <= simplexEps {
				continue
			}
			ratio := T.At(i, last) / a
			switch {
			case r == -1 || ratio < bestRatio-simplexEps:
				r, bestRatio = i, ratio
			case ratio < bestRatio+simplexEps && basis[i] < basis[r]:
				r = i
			}
		}
		if r == -1 {
			return statusUnbounded
		}

		pivot(T, obj, basis, r, q)
	}

	return statusInfeasible
}

// pivot performs the Gauss-Jordan elimination step that makes column q the
// basic column of row r, updating T, the reduced-cost row obj, and basis in
// place.
func pivot(T *mat.Dense, obj []float64, basis []int, r, q int) {
	m, _ := T.Dims()
	pivotRow := T.RawRowView(r)
	pv := pivotRow[q]
	for k := range pivotRow {
		pivotRow[k] /= pv
	}

	for i := 0; i < m; i++ {
		if i == r {
			continue
		}
		row := T.RawRowView(i)
		factor := row[q]
		if factor == 0 {
			continue
		}
		for k := range row {
			row[k] -= factor * pivotRow[k]
		}
	}

	factor := obj[q]
	if factor != 0 {
		for k := range obj {
			obj[k] -= factor * pivotRow[k]
		}
	}

	basis[r] = q
}
