package genetic

import "sync"

// GA is the thread-safe reservation/release protocol every worker goes
// through to get an ordering to route and to report back its fitness.
// Grounded on original_source/src/ga_interface.rs: a single mutex guards
// generation rollover and fitness bookkeeping so concurrent workers never
// observe a half-built generation.
type GA struct {
	mu sync.Mutex

	population *Population

	nConnections    int
	nextOrderingIdx int
	nUnprocessed    int
}

// New builds a GA with the given population size, crossover/mutation
// rates, tournament size, and PCG seed. Call Reset once a circuit's
// connection count is known before reserving any ordering.
func New(populationSize int, crossoverRate, mutationRate float64, tournamentSize int, seed uint64) *GA {
	return &GA{
		population: NewPopulation(populationSize, crossoverRate, mutationRate, tournamentSize, seed),
	}
}

// Reset establishes the connection count for the active circuit and
// generates a fresh random population, per spec.md §4.7.
func (g *GA) Reset(nConnections int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nConnections = nConnections
	g.population.Reset(nConnections)
	g.nextOrderingIdx = 0
	g.nUnprocessed = g.population.size
}

// ReserveOrdering returns the index of an ordering ready to be routed, or
// ok=false if the caller should back off and retry: either the current
// generation is exhausted but other workers still hold unreleased
// orderings, or the GA has not yet been reset for a circuit.
func (g *GA) ReserveOrdering() (idx int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.nConnections == 0 {
		return 0, false
	}

	needsNewGeneration := g.nextOrderingIdx == g.population.size
	if needsNewGeneration {
		if g.nUnprocessed != 0 {
			return 0, false
		}
		g.population.NextGeneration()
		g.nUnprocessed = g.population.size
		g.nextOrderingIdx = 0
	}

	idx = g.nextOrderingIdx
	g.nextOrderingIdx++
	return idx, true
}

// GetOrdering decodes organism idx's gene vector into a connection
// ordering. idx must come from a successful ReserveOrdering.
func (g *GA) GetOrdering(idx int) []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.population.Decode(idx)
}

// ReleaseOrdering reports the fitness observed for organism idx and marks
// it processed. A reservation that was discarded rather than routed
// (stale snapshot, cooperative abort — SPEC_FULL.md's resolution of Open
// Question 1) does not call this. Its slot then stays counted in
// nUnprocessed, so once every index of the current generation has been
// handed out, ReserveOrdering keeps returning ok=false and the generation
// does not roll over until Reset builds a new population.
func (g *GA) ReleaseOrdering(idx, completed, cost int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.population.SetFitness(idx, completed, cost)
	g.nUnprocessed--
}
