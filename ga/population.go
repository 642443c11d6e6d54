package ga

import (
	"sort"

	"golang.org/x/exp/rand"

	"github.com/netopt-go/scheduler/schema"
	"github.com/netopt-go/scheduler/sim"
	"github.com/netopt-go/scheduler/store"
)

// Population holds the current generation of genes together with the
// pieces needed to build and score them: the schema/base store pair
// candidate fraction values are written into and simulated against, the
// row layout a gene's segments are addressed by, and the rho-slice
// grouping normalization operates on. Implements the Generate/EvaluateAll/
// CrossRandomFraction/RandomMutate/Select population operation set.
type Population struct {
	schema  *schema.Schema
	base    *store.Interface
	row     *schema.RowIndex
	groups  *sliceGroups
	rng     *rand.Rand
	simOpts []sim.RunOption

	size  int
	genes []*Gene
}

// NewPopulation builds a Population over base's schema. base is never
// mutated directly; every gene evaluation works against a fresh Clone.
// Every evaluation simulator draws from rng too, unless simOpts supply
// their own sim.WithRand.
func NewPopulation(s *schema.Schema, base *store.Interface, rng *rand.Rand, simOpts ...sim.RunOption) (*Population, error) {
	row, err := schema.NewRowIndex(s, fractionVars)
	if err != nil {
		return nil, err
	}

	groups, err := buildSliceGroups(s, row)
	if err != nil {
		return nil, err
	}

	return &Population{
		schema:  s,
		base:    base,
		row:     row,
		groups:  groups,
		rng:     rng,
		simOpts: append([]sim.RunOption{sim.WithRand(rng)}, simOpts...),
	}, nil
}

// Generate creates n normalized random genes and appends them to the
// population, recording n as the population's target size for Select.
func (p *Population) Generate(n int) {
	p.size = n
	for i := 0; i < n; i++ {
		p.genes = append(p.genes, p.randomGene())
	}
}

func (p *Population) randomGene() *Gene {
	values := make([]float64, p.row.RowLen())
	for i := range values {
		values[i] = p.rng.Float64()
	}
	normalizeGene(values, p.groups)

	return &Gene{Values: values}
}

// Genes returns the current generation, in whatever order Sort last left
// them.
func (p *Population) Genes() []*Gene {
	return p.genes
}

// Best returns the highest-quality gene (Sort must have run first, or the
// population must contain at most one evaluated gene).
func (p *Population) Best() *Gene {
	if len(p.genes) == 0 {
		return nil
	}

	return p.genes[0]
}

// BestStore returns the scratch data store the best gene was evaluated
// against — the merge target for an orchestrator that wants to commit the
// winning fractions (and the realized amounts the simulator wrote back
// into it) into the persistent store.
func (p *Population) BestStore() *store.Interface {
	best := p.Best()
	if best == nil {
		return nil
	}

	return best.scratch
}

// EvaluateAll scores every gene: clone the base store, overwrite its
// fraction variables from the gene, run a simulator against the clone, and
// record the resulting quality.
func (p *Population) EvaluateAll() error {
	for _, g := range p.genes {
		if err := p.evaluate(g); err != nil {
			return err
		}
	}

	return nil
}

func (p *Population) evaluate(g *Gene) error {
	scratch := p.base.Clone()
	if err := p.writeGene(scratch, g); err != nil {
		return err
	}

	simulator, err := sim.New(p.schema, scratch, p.simOpts...)
	if err != nil {
		return err
	}

	quality, err := simulator.Run()
	if err != nil {
		return err
	}

	g.Quality = quality
	g.scratch = scratch

	return nil
}

func (p *Population) writeGene(di *store.Interface, g *Gene) error {
	for _, v := range fractionVars {
		if err := p.schema.RadixMapIterVar(v, func(plain []int) error {
			pos, err := p.row.GetPosPlain(v, plain)
			if err != nil {
				return err
			}

			return di.SetPlain(v, g.Values[pos], plain)
		}); err != nil {
			return err
		}
	}

	return nil
}

// Sort orders the population by descending quality.
func (p *Population) Sort() {
	sort.Slice(p.genes, func(i, j int) bool { return p.genes[i].Quality > p.genes[j].Quality })
}

// CrossRandomFraction pairs up consecutive genes in the current ordering
// and, for each pair, swaps a random contiguous sub-range within each
// fraction segment between the two parents to produce two children,
// renormalizing both afterward. Returns the children; it does not modify
// the population itself.
func (p *Population) CrossRandomFraction() []*Gene {
	children := make([]*Gene, 0, len(p.genes))
	for i := 0; i+1 < len(p.genes); i += 2 {
		a, b := p.crossPair(p.genes[i], p.genes[i+1])
		children = append(children, a, b)
	}

	return children
}

func (p *Population) crossPair(parentA, parentB *Gene) (*Gene, *Gene) {
	childA, childB := parentA.clone(), parentB.clone()

	for _, v := range fractionVars {
		start, length, err := p.row.SegmentRange(v)
		if err != nil || length == 0 {
			continue
		}

		lo := start + p.rng.Intn(length)
		hi := start + p.rng.Intn(length)
		if lo > hi {
			lo, hi = hi, lo
		}

		for pos := lo; pos <= hi; pos++ {
			childA.Values[pos], childB.Values[pos] = childB.Values[pos], childA.Values[pos]
		}
	}

	normalizeGene(childA.Values, p.groups)
	normalizeGene(childB.Values, p.groups)

	return childA, childB
}

// RandomMutate perturbs one random cell of every gene except the first by
// a uniform fraction of its current value, in [-scale, scale], then
// renormalizes only the rho-slice that cell belongs to. The first gene (the
// best one, once Sort and Select have run) is left unchanged, so the best
// gene survives into the next generation as it was.
func (p *Population) RandomMutate(scale float64) {
	for i, g := range p.genes {
		if i == 0 {
			continue
		}
		pos := p.rng.Intn(len(g.Values))
		delta := g.Values[pos] * scale * (p.rng.Float64()*2 - 1)
		g.Values[pos] += delta

		groupIdx, ok := p.groups.posToGroup[pos]
		if !ok {
			continue
		}
		normalizeSlice(g.Values, p.groups.groups[groupIdx])
	}
}

// Select retains the top-quality half of the population (Sort must have
// run first) and replenishes it back to the original size with offspring
// from CrossRandomFraction over the survivors.
func (p *Population) Select() {
	keep := p.size / 2
	if keep < 1 {
		keep = 1
	}
	if keep > len(p.genes) {
		keep = len(p.genes)
	}
	p.genes = p.genes[:keep]

	children := p.CrossRandomFraction()
	for i := 0; len(p.genes) < p.size && i < len(children); i++ {
		p.genes = append(p.genes, children[i])
	}
	for len(p.genes) < p.size {
		a := p.genes[p.rng.Intn(keep)]
		b := p.genes[p.rng.Intn(keep)]
		childA, _ := p.crossPair(a, b)
		p.genes = append(p.genes, childA)
	}
}
