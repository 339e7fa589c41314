package genetic

import "math/rand/v2"

// Population holds one generation of organisms and the operators that
// advance it. Grounded on ga_core.rs's Population: tournament selection,
// single-point crossover, per-child mutation, generational replacement.
type Population struct {
	size           int
	crossoverRate  float64
	mutationRate   float64
	tournamentSize int
	nGenes         int

	rng *rand.Rand

	organisms []organism
}

// NewPopulation builds a population of the given size (must be even,
// spec.md §4.6) with the given operator rates and tournament size. seed
// drives a PCG source so runs are reproducible (SPEC_FULL.md's GA
// determinism requirement).
func NewPopulation(size int, crossoverRate, mutationRate float64, tournamentSize int, seed uint64) *Population {
	if size%2 != 0 {
		panic("genetic: population size must be even")
	}
	if tournamentSize < 1 {
		tournamentSize = 2
	}
	return &Population{
		size:           size,
		crossoverRate:  crossoverRate,
		mutationRate:   mutationRate,
		tournamentSize: tournamentSize,
		rng:            rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Reset reseeds the population with nGenes genes per organism and
// generates a fresh random population.
func (p *Population) Reset(nGenes int) {
	p.nGenes = nGenes
	p.organisms = make([]organism, p.size)
	for i := range p.organisms {
		p.organisms[i] = randomOrganism(nGenes, p.rng)
	}
}

// Decode returns the permutation of [0, nGenes) encoded by organism idx.
func (p *Population) Decode(idx int) []int {
	return p.organisms[idx].decode()
}

// SetFitness records the fitness last observed for organism idx.
func (p *Population) SetFitness(idx, completed, cost int) {
	p.organisms[idx].completed = completed
	p.organisms[idx].cost = cost
	p.organisms[idx].hasFitness = true
}

// tournamentSelect samples nCandidates organism indices with replacement
// and returns the one with strictly more completed routes, or equal
// completed and strictly lower cost (spec.md §4.6). Organisms that have
// never reported a fitness lose every comparison.
func (p *Population) tournamentSelect(nCandidates int) int {
	best := -1
	bestCompleted := 0
	bestCost := int(^uint(0) >> 1)

	for i := 0; i < nCandidates; i++ {
		idx := p.rng.IntN(p.size)
		o := p.organisms[idx]
		if !o.hasFitness {
			continue
		}
		better := o.completed > bestCompleted ||
			(o.completed == bestCompleted && o.cost < bestCost)
		if best == -1 || better {
			best = idx
			bestCompleted = o.completed
			bestCost = o.cost
		}
	}
	if best == -1 {
		// No organism in the sample has a fitness yet (first generation
		// before any reservation has been released); fall back to a
		// uniform pick so the algorithm can still progress.
		best = p.rng.IntN(p.size)
	}
	return best
}

func (p *Population) selectPairTournament() (int, int) {
	a := p.tournamentSelect(p.tournamentSize)
	for {
		b := p.tournamentSelect(p.tournamentSize)
		if b != a {
			return a, b
		}
	}
}

// NextGeneration replaces the population wholesale: N/2 child pairs, each
// drawn from a distinct tournament-selected parent pair, optionally
// crossed over at a single random point and independently mutated.
func (p *Population) NextGeneration() {
	next := make([]organism, 0, p.size)
	for i := 0; i < p.size/2; i++ {
		aIdx, bIdx := p.selectPairTournament()
		a := p.organisms[aIdx].clone()
		b := p.organisms[bIdx].clone()

		if p.rng.Float64() < p.crossoverRate {
			crossIdx := p.rng.IntN(p.nGenes)
			for i := crossIdx; i < p.nGenes; i++ {
				a.genes[i], b.genes[i] = b.genes[i], a.genes[i]
			}
		}
		if p.rng.Float64() < p.mutationRate {
			a.mutate(p.rng)
		}
		if p.rng.Float64() < p.mutationRate {
			b.mutate(p.rng)
		}

		a.hasFitness, a.completed, a.cost = false, 0, 0
		b.hasFitness, b.completed, b.cost = false, 0, 0

		next = append(next, a, b)
	}
	p.organisms = next
}
