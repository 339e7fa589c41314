package router

import (
	"errors"

	"github.com/striprouter/striprouter/board"
)

// ErrStuck is returned by backtrace when it exceeds W*H steps, the safety
// net spec.md §4.3 requires: overshoot indicates an inconsistent cost
// assignment, a bug in find_costs rather than recoverable router state.
var ErrStuck = errors.New("router: backtrace exceeded board size, cost assignment is inconsistent")

const infCost = int(^uint(0) >> 1)

// heapEntry is one frontier node. Ordered by (cost, x, y, isWireLayer) so
// the heap's pop order is fully deterministic regardless of insertion
// order or Go's map iteration (spec.md §9, "priority-queue determinism").
type heapEntry struct {
	cost        int
	via         board.Via
	isWireLayer bool
}

func (a heapEntry) less(b heapEntry) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.via.X != b.via.X {
		return a.via.X < b.via.X
	}
	if a.via.Y != b.via.Y {
		return a.via.Y < b.via.Y
	}
	return !a.isWireLayer && b.isWireLayer
}

// minHeap is a hand-rolled binary heap, grounded on the teacher's
// navigation/flowfield.go pathfinder: a slice-backed sift-up/sift-down
// heap rather than container/heap, so the deterministic tiebreak can live
// directly in the comparison.
type minHeap []heapEntry

func (h *minHeap) push(e heapEntry) {
	*h = append(*h, e)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !(*h)[i].less((*h)[parent]) {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].less((*h)[left]) {
			smallest = right
		}
		if !(*h)[smallest].less((*h)[i]) {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

func (h *minHeap) empty() bool { return len(*h) == 0 }

// ucs is per-search scratch state: cost arrays for both layers, frontier
// and explored membership, and the priority queue. A fresh ucs is created
// per connection attempt and discarded with it.
type ucs struct {
	b board.Board

	costStrip []int
	costWire  []int

	frontierStrip []bool
	frontierWire  []bool
	exploredStrip []bool
	exploredWire  []bool

	heap minHeap
}

func newUCS(b board.Board) *ucs {
	u := &ucs{
		b:             b,
		costStrip:     make([]int, b.Size()),
		costWire:      make([]int, b.Size()),
		frontierStrip: make([]bool, b.Size()),
		frontierWire:  make([]bool, b.Size()),
		exploredStrip: make([]bool, b.Size()),
		exploredWire:  make([]bool, b.Size()),
	}
	for i := range u.costStrip {
		u.costStrip[i] = infCost
		u.costWire[i] = infCost
	}
	return u
}

func (u *ucs) cost(lv board.LayerVia) int {
	if lv.IsWireLayer {
		return u.costWire[u.b.Idx(lv.Via)]
	}
	return u.costStrip[u.b.Idx(lv.Via)]
}

func (u *ucs) setCost(lv board.LayerVia, c int) {
	if lv.IsWireLayer {
		u.costWire[u.b.Idx(lv.Via)] = c
	} else {
		u.costStrip[u.b.Idx(lv.Via)] = c
	}
}

func (u *ucs) explored(lv board.LayerVia) bool {
	if lv.IsWireLayer {
		return u.exploredWire[u.b.Idx(lv.Via)]
	}
	return u.exploredStrip[u.b.Idx(lv.Via)]
}

func (u *ucs) setExplored(lv board.LayerVia) {
	if lv.IsWireLayer {
		u.exploredWire[u.b.Idx(lv.Via)] = true
	} else {
		u.exploredStrip[u.b.Idx(lv.Via)] = true
	}
}

func (u *ucs) inFrontier(lv board.LayerVia) bool {
	if lv.IsWireLayer {
		return u.frontierWire[u.b.Idx(lv.Via)]
	}
	return u.frontierStrip[u.b.Idx(lv.Via)]
}

func (u *ucs) setFrontier(lv board.LayerVia, v bool) {
	if lv.IsWireLayer {
		u.frontierWire[u.b.Idx(lv.Via)] = v
	} else {
		u.frontierStrip[u.b.Idx(lv.Via)] = v
	}
}

// findLowestCostRoute runs find_costs then, if reachable, backtrace.
// Returns the condensed-ready raw step sequence (strip layer at both
// ends), or nil if the endpoint is unreachable, plus the route's cost as
// found by the search itself: cost[end], exactly as
// original_source/src/ucs.rs's backtrace_lowest_cost_route accumulates
// route_cost from cost[cur]-cost[next] rather than from the geometry of
// the expanded steps. This matters for a route that rides an existing
// wire-jump shortcut: the search charges it a single wire_cost edge (no
// vias, regardless of how many cells the jumper spans), and that is the
// cost layout.Layout must record — recomputing from the condensed,
// fully-expanded Sections would silently re-charge the full span.
func (r *Router) findLowestCostRoute(start, end board.Via) ([]board.LayerVia, int, error) {
	u := newUCS(r.board)

	startLV := board.LayerVia{Via: start, IsWireLayer: false}
	endLV := board.LayerVia{Via: end, IsWireLayer: false}

	u.setCost(startLV, 0)
	u.heap.push(heapEntry{cost: 0, via: start, isWireLayer: false})
	u.setFrontier(startLV, true)

	found := false
	foundCost := 0
	for !u.heap.empty() {
		e := u.heap.pop()
		node := board.LayerVia{Via: e.via, IsWireLayer: e.isWireLayer}
		if u.explored(node) {
			// Stale duplicate left behind by a relaxation that found a
			// cheaper cost after this entry was already queued.
			continue
		}
		u.setFrontier(node, false)

		if node.Via == endLV.Via && !node.IsWireLayer {
			found = true
			foundCost = e.cost
			break
		}
		u.setExplored(node)

		if node.IsWireLayer {
			if node.Via.X > 0 {
				r.exploreNeighbour(u, node, stepLeft(node), start, r.settings.WireCost)
			}
			if node.Via.X < r.board.W-1 {
				r.exploreNeighbour(u, node, stepRight(node), start, r.settings.WireCost)
			}
			r.exploreNeighbour(u, node, stepToStrip(node), start, r.settings.ViaCost)
		} else {
			if node.Via.Y > 0 {
				r.exploreNeighbour(u, node, stepUp(node), start, r.settings.StripCost)
			}
			if node.Via.Y < r.board.H-1 {
				r.exploreNeighbour(u, node, stepDown(node), start, r.settings.StripCost)
			}
			r.exploreNeighbour(u, node, stepToWire(node), start, r.settings.ViaCost)

			if jump, ok := r.wireJumpAt(node.Via); ok {
				jumpLV := board.LayerVia{Via: jump, IsWireLayer: false}
				u.exploreFrontier(node, jumpLV, r.settings.WireCost)
			}
		}
	}

	if !found {
		return nil, 0, nil
	}
	steps, err := r.backtrace(u, start, end)
	if err != nil {
		return nil, 0, err
	}
	return steps, foundCost, nil
}

func (r *Router) exploreNeighbour(u *ucs, cur, next board.LayerVia, startPin board.Via, stepCost int) {
	if r.isAvailable(next, startPin) {
		u.exploreFrontier(cur, next, stepCost)
	}
}

func (u *ucs) exploreFrontier(cur, next board.LayerVia, stepCost int) {
	if u.explored(next) {
		return
	}
	nextCost := u.cost(cur) + stepCost
	if !u.inFrontier(next) {
		u.setFrontier(next, true)
		u.setCost(next, nextCost)
		u.heap.push(heapEntry{cost: nextCost, via: next.Via, isWireLayer: next.IsWireLayer})
	} else if u.cost(next) > nextCost {
		u.setCost(next, nextCost)
		u.heap.push(heapEntry{cost: nextCost, via: next.Via, isWireLayer: next.IsWireLayer})
	}
}

// backtrace walks from end to start following strictly decreasing cost,
// emitting the intermediate wire-layer steps of any wire-jump shortcut it
// takes (spec.md §4.3). Per SPEC_FULL.md's resolution of Open Question 3,
// wire-jump edges are bidirectional here exactly as in find_costs.
func (r *Router) backtrace(u *ucs, start, end board.Via) ([]board.LayerVia, error) {
	startLV := board.LayerVia{Via: start, IsWireLayer: false}
	cur := board.LayerVia{Via: end, IsWireLayer: false}

	steps := []board.LayerVia{cur}

	limit := r.board.W * r.board.H
	for cur.Via != startLV.Via || cur.IsWireLayer != startLV.IsWireLayer {
		limit--
		if limit < 0 {
			return nil, ErrStuck
		}

		next := cur

		if cur.IsWireLayer {
			if cur.Via.X > 0 {
				if n := stepLeft(cur); u.cost(n) < u.cost(next) {
					next = n
				}
			}
			if cur.Via.X < r.board.W-1 {
				if n := stepRight(cur); u.cost(n) < u.cost(next) {
					next = n
				}
			}
			if n := stepToStrip(cur); u.cost(n) < u.cost(next) {
				next = n
			}
		} else {
			if cur.Via.Y > 0 {
				if n := stepUp(cur); u.cost(n) < u.cost(next) {
					next = n
				}
			}
			if cur.Via.Y < r.board.H-1 {
				if n := stepDown(cur); u.cost(n) < u.cost(next) {
					next = n
				}
			}
			if n := stepToWire(cur); u.cost(n) < u.cost(next) {
				next = n
			}

			if jump, ok := r.wireJumpAt(cur.Via); ok {
				jumpLV := board.LayerVia{Via: jump, IsWireLayer: false}
				if u.cost(jumpLV) < u.cost(next) {
					steps = append(steps, board.LayerVia{Via: cur.Via, IsWireLayer: true})
					x1, x2 := cur.Via.X, jump.X
					if x1 > x2 {
						for x := x1 - 1; x > x2; x-- {
							steps = append(steps, board.LayerVia{Via: board.Via{X: x, Y: cur.Via.Y}, IsWireLayer: true})
						}
					} else {
						for x := x1 + 1; x < x2; x++ {
							steps = append(steps, board.LayerVia{Via: board.Via{X: x, Y: cur.Via.Y}, IsWireLayer: true})
						}
					}
					if x1 != x2 {
						steps = append(steps, board.LayerVia{Via: board.Via{X: x2, Y: cur.Via.Y}, IsWireLayer: true})
					}
					next = jumpLV
				}
			}
		}

		cur = next
		steps = append(steps, cur)
	}

	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps, nil
}

func stepLeft(v board.LayerVia) board.LayerVia {
	return board.LayerVia{Via: board.Via{X: v.Via.X - 1, Y: v.Via.Y}, IsWireLayer: v.IsWireLayer}
}

func stepRight(v board.LayerVia) board.LayerVia {
	return board.LayerVia{Via: board.Via{X: v.Via.X + 1, Y: v.Via.Y}, IsWireLayer: v.IsWireLayer}
}

func stepUp(v board.LayerVia) board.LayerVia {
	return board.LayerVia{Via: board.Via{X: v.Via.X, Y: v.Via.Y - 1}, IsWireLayer: v.IsWireLayer}
}

func stepDown(v board.LayerVia) board.LayerVia {
	return board.LayerVia{Via: board.Via{X: v.Via.X, Y: v.Via.Y + 1}, IsWireLayer: v.IsWireLayer}
}

func stepToWire(v board.LayerVia) board.LayerVia {
	return board.LayerVia{Via: v.Via, IsWireLayer: true}
}

func stepToStrip(v board.LayerVia) board.LayerVia {
	return board.LayerVia{Via: v.Via, IsWireLayer: false}
}
