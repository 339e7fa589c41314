package router

import (
	"github.com/striprouter/striprouter/board"
	"github.com/striprouter/striprouter/layout"
)

// findStripCuts scans every column top to bottom, emitting a cut above
// each occupied cell that is not in the same net as the cell directly
// above it, once an occupied cell has been seen higher in the column.
// Grounded on spec.md §4.5; cuts are derived after all
// routing for the attempt has committed (SPEC_FULL.md's resolution of
// Open Question 2 — cuts never feed back into is_available).
func (r *Router) findStripCuts() []layout.StripCut {
	var cuts []layout.StripCut

	for x := 0; x < r.board.W; x++ {
		used := r.occupied(board.Via{X: x, Y: 0})
		for y := 1; y < r.board.H; y++ {
			prev := board.Via{X: x, Y: y - 1}
			cur := board.Via{X: x, Y: y}

			foreign := (r.nets.HasConnection(cur) && !r.nets.IsConnected(cur, prev)) ||
				(r.isActivePin(cur) && !r.nets.IsConnected(cur, prev))

			if foreign && used {
				cuts = append(cuts, layout.StripCut{Above: prev, Below: cur})
			}
			if r.occupied(cur) {
				used = true
			}
		}
	}
	return cuts
}

func (r *Router) occupied(v board.Via) bool {
	return r.nets.HasConnection(v) || r.isActivePin(v)
}
