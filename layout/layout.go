package layout

import (
	"github.com/striprouter/striprouter/board"
	"github.com/striprouter/striprouter/nets"
)

// RouteStatus reports whether a single connection attempt succeeded.
type RouteStatus int

const (
	RouteOK RouteStatus = iota
	RouteFailed
)

// Section is a single strip or wire segment of a committed route, already
// condensed from the raw step-by-step UCS backtrace (router/condense.go).
type Section struct {
	Start, End  board.Via
	IsWireLayer bool
}

// LayerStartEndVia names the two layer-tagged endpoints of one route leg.
// condense does not use it: its input is a []board.LayerVia step sequence.
type LayerStartEndVia struct {
	Start, End board.LayerVia
}

// StripCut marks a single strip-layer cut: a committed break in vertical
// copper continuity between two adjacent vias in the same column.
type StripCut struct {
	Above, Below board.Via
}

// Layout is the complete, immutable result of one routing attempt against
// one gene ordering. It is produced by router.Route and scored by the
// genetic package.
type Layout struct {
	Settings Settings

	// Sections holds every committed route, indexed in connection-attempt
	// order; a failed connection contributes no sections.
	Sections [][]Section

	RouteStatusVec []RouteStatus

	// RouteCost is the UCS search cost (cost[end]) of each connection
	// attempt, index-aligned with Sections/RouteStatusVec; a failed
	// connection contributes 0. This is captured directly from the search,
	// not recomputed from Sections' geometry, so that a route riding an
	// existing wire-jump shortcut is charged the single wire_cost edge the
	// search actually paid for it rather than the cost of a fresh crossing
	// (original_source/src/ucs.rs's backtrace_lowest_cost_route).
	RouteCost []int

	StripCuts []StripCut

	// Nets is the final union-find state after every successful
	// connection has been committed, kept for inspection and testing.
	Nets *nets.Nets

	NCompletedRoutes int
	NFailedRoutes    int

	// BaseTimestamp is the timestamp of the circuit snapshot this layout
	// was computed against; control.Pool uses it to discard a layout
	// produced against a now-superseded circuit (SPEC_FULL.md §5,
	// Open Question 1).
	BaseTimestamp int64
}

// Cost totals the UCS search cost of every committed route plus every
// strip cut, per spec.md §4.3. Failed connections contribute nothing.
// This sums RouteCost rather than re-deriving cost from Sections'
// geometry: a route that reuses an existing wire via the jump shortcut
// was found by the search for a single wire_cost edge, and Cost must
// reflect that, not the length of the condensed wire span the backtrace
// expanded it into.
func (l *Layout) Cost() int {
	total := 0
	for _, c := range l.RouteCost {
		total += c
	}
	total += len(l.StripCuts) * l.Settings.CutCost
	return total
}

// Fitness is the (completed, cost) pair routes are compared on: more
// completed connections always wins, ties broken by lower cost. Matches
// ga_core.rs's lexicographic Ord impl for Fitness.
type Fitness struct {
	Completed int
	Cost      int
}

// Less reports whether f is strictly better than other.
func (f Fitness) Less(other Fitness) bool {
	if f.Completed != other.Completed {
		return f.Completed > other.Completed
	}
	return f.Cost < other.Cost
}

// FitnessOf summarizes a layout's fitness for GA comparison.
func (l *Layout) FitnessOf() Fitness {
	return Fitness{Completed: l.NCompletedRoutes, Cost: l.Cost()}
}
