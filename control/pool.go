// Package control runs the worker pool that repeatedly reserves GA
// orderings, routes them, and promotes improvements to a shared best
// layout. Grounded on spec.md §4.8 and §5, and on
// original_source/src/router_thread.rs's commented worker loop (the
// reserve → snapshot → route → release → promote sequence, including the
// discard-without-release behavior on a stale or cancelled attempt).
package control

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/striprouter/striprouter/board"
	"github.com/striprouter/striprouter/circuit"
	"github.com/striprouter/striprouter/genetic"
	"github.com/striprouter/striprouter/layout"
	"github.com/striprouter/striprouter/router"
)

// backoff is how long a worker sleeps when the GA has no ordering ready,
// per spec.md §5 ("workers short-sleep (~10 ms) when the GA is drained").
const backoff = 10 * time.Millisecond

// Pool owns the shared state every worker reads or writes: the immutable
// circuit input (behind a baseline timestamp), the GA, and the best
// layout slot.
type Pool struct {
	ga *genetic.GA

	inputMu       sync.RWMutex
	board         board.Board
	circuit       *circuit.Circuit
	settings      layout.Settings
	baseTimestamp int64

	bestMu sync.RWMutex
	best   *layout.Layout

	// Stats, read by cmd/striprouter for the run summary.
	statsMu       sync.Mutex
	nRoutesTried  int
	nImprovements int
}

// New builds a Pool for the given circuit and cost settings. ga must
// already have had Reset(len(circuit.Connections)) called.
func New(ga *genetic.GA, b board.Board, c *circuit.Circuit, settings layout.Settings, baseTimestamp int64) *Pool {
	return &Pool{
		ga:            ga,
		board:         b,
		circuit:       c,
		settings:      settings,
		baseTimestamp: baseTimestamp,
	}
}

// SetCircuit installs a new circuit as the active input and replaces the
// baseline timestamp with the given one, so in-flight snapshots taken with
// a different timestamp are recognized as stale by workers that finish
// after the swap. The board passed to New is kept.
func (p *Pool) SetCircuit(c *circuit.Circuit, settings layout.Settings, timestamp int64) {
	p.inputMu.Lock()
	defer p.inputMu.Unlock()
	p.circuit = c
	p.settings = settings
	p.baseTimestamp = timestamp
}

type inputSnapshot struct {
	board         board.Board
	circuit       *circuit.Circuit
	settings      layout.Settings
	baseTimestamp int64
}

// snapshot takes the brief input lock just long enough to copy the
// current pointers, per spec.md §5 ("held only long enough to clone or
// replace"). Circuit itself is immutable post-parse so no deep copy is
// needed, only the pointer and its timestamp.
func (p *Pool) snapshot() inputSnapshot {
	p.inputMu.RLock()
	defer p.inputMu.RUnlock()
	return inputSnapshot{
		board:         p.board,
		circuit:       p.circuit,
		settings:      p.settings,
		baseTimestamp: p.baseTimestamp,
	}
}

func (p *Pool) isStale(baseTimestamp int64) bool {
	p.inputMu.RLock()
	defer p.inputMu.RUnlock()
	return baseTimestamp != p.baseTimestamp
}

// Best returns the current best layout, or nil if none has been produced
// yet. The caller receives the same pointer every reader sees; Layout is
// never mutated after Router.Route returns it, so this is safe to share.
func (p *Pool) Best() *layout.Layout {
	p.bestMu.RLock()
	defer p.bestMu.RUnlock()
	return p.best
}

// Stats reports how many orderings have been routed and how many times a
// layout was adopted as the best one (the first layout and replacements of
// a stale best included).
func (p *Pool) Stats() (tried, improvements int) {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.nRoutesTried, p.nImprovements
}

// Run spawns one worker per GOMAXPROCS and blocks until ctx is cancelled.
func (p *Pool) Run(ctx context.Context) {
	n := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			p.workerLoop(ctx)
		}()
	}
	wg.Wait()
}

func (p *Pool) workerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		idx, ok := p.ga.ReserveOrdering()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			continue
		}
		ordering := p.ga.GetOrdering(idx)

		snap := p.snapshot()

		r := router.New(snap.board, snap.circuit, snap.settings)
		lay, aborted := r.Route(ordering, snap.baseTimestamp, ctx.Done())

		if aborted || p.isStale(snap.baseTimestamp) {
			// Per SPEC_FULL.md's resolution of Open Question 1: discard
			// the partial layout entirely, do not release a fitness
			// score for it.
			continue
		}

		p.ga.ReleaseOrdering(idx, lay.NCompletedRoutes, lay.Cost())
		p.promote(lay)

		p.statsMu.Lock()
		p.nRoutesTried++
		p.statsMu.Unlock()
	}
}

// promote adopts lay as the new best iff it strictly improves on the
// current best, is an equal-completed tie with lower cost, or the
// current best has gone stale against the active input (spec.md §4.8).
func (p *Pool) promote(lay *layout.Layout) {
	p.bestMu.Lock()
	defer p.bestMu.Unlock()

	if p.best == nil {
		p.best = lay
		p.bumpImprovement()
		return
	}

	bestStale := p.isStale(p.best.BaseTimestamp)
	betterCompleted := lay.NCompletedRoutes > p.best.NCompletedRoutes
	tieLowerCost := lay.NCompletedRoutes == p.best.NCompletedRoutes && lay.Cost() < p.best.Cost()

	if bestStale || betterCompleted || tieLowerCost {
		p.best = lay
		p.bumpImprovement()
	}
}

func (p *Pool) bumpImprovement() {
	p.statsMu.Lock()
	p.nImprovements++
	p.statsMu.Unlock()
}
