package ga

import "github.com/netopt-go/scheduler/store"

// Gene is a fixed-length vector of fraction values in [0,1], concatenating
// one segment per controllable fraction variable (m_psi, m_v, m_phi) in
// the row order the owning Population was built with. Quality is unset
// (zero) until EvaluateAll scores the gene.
type Gene struct {
	Values  []float64
	Quality float64

	scratch *store.Interface // set by evaluate; see Population.BestStore
}

// clone makes an independent copy of the gene's values (Quality and
// scratch are not carried over — the copy has not been evaluated yet).
func (g *Gene) clone() *Gene {
	values := make([]float64, len(g.Values))
	copy(values, g.Values)

	return &Gene{Values: values}
}
