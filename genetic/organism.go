// Package genetic evolves connection orderings: each organism's gene
// vector is a topological-sort recipe that decodes into a permutation of
// connection indices, which the router then uses to drive one routing
// attempt. Grounded on original_source/src/ga_core.rs and
// ga_interface.rs; the reservation protocol and selection/crossover
// mechanics follow the original exactly, adapted from the teacher's
// Candidate/tournament-selector vocabulary in genetic/genetic.go to this
// domain's concrete gene-vector encoding — the teacher's generic
// Solution/Numeric engine assumes a synchronous evaluate-then-replace
// loop incompatible with this spec's external reserve/route/release
// protocol (see DESIGN.md).
package genetic

import "math/rand/v2"

// organism holds one candidate ordering recipe and the fitness last
// reported for it.
type organism struct {
	genes      []int
	completed  int
	cost       int
	hasFitness bool
}

func randomOrganism(nGenes int, rng *rand.Rand) organism {
	genes := make([]int, nGenes)
	for i := range genes {
		genes[i] = rng.IntN(nGenes)
	}
	return organism{genes: genes}
}

func (o organism) clone() organism {
	genes := make([]int, len(o.genes))
	copy(genes, o.genes)
	return organism{genes: genes, completed: o.completed, cost: o.cost, hasFitness: o.hasFitness}
}

// mutate overwrites one random gene with another random gene value, per
// spec.md §4.6.
func (o *organism) mutate(rng *rand.Rand) {
	n := len(o.genes)
	dependentIdx := rng.IntN(n)
	dependencyIdx := rng.IntN(n)
	o.genes[dependentIdx] = dependencyIdx
}

type geneDependency struct {
	gene           int
	geneDependency int
}

// decode runs the topological sort described in spec.md §4.6: pair each
// index with its declared dependency, sort by dependency, then
// repeatedly emit every pair whose dependency has already been emitted.
// A sweep that makes no progress force-emits the first remaining pair,
// breaking cycles deterministically. The result is a permutation of
// [0, n).
func (o organism) decode() []int {
	n := len(o.genes)
	deps := make([]geneDependency, n)
	for i, dep := range o.genes {
		deps[i] = geneDependency{gene: i, geneDependency: dep}
	}

	// Stable by dependency value; ties keep original gene order, matching
	// the original's sort_by on gene_dependency alone.
	for i := 1; i < len(deps); i++ {
		for j := i; j > 0 && deps[j-1].geneDependency > deps[j].geneDependency; j-- {
			deps[j-1], deps[j] = deps[j], deps[j-1]
		}
	}

	out := make([]int, 0, n)
	emitted := make(map[int]struct{}, n)

	for len(deps) > 0 {
		progressed := false
		remaining := deps[:0:0]
		for _, d := range deps {
			if _, ok := emitted[d.geneDependency]; ok {
				out = append(out, d.gene)
				emitted[d.gene] = struct{}{}
				progressed = true
			} else {
				remaining = append(remaining, d)
			}
		}
		deps = remaining
		if !progressed {
			out = append(out, deps[0].gene)
			emitted[deps[0].gene] = struct{}{}
			deps = deps[1:]
		}
	}
	return out
}
