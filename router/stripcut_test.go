package router

import (
	"testing"

	"github.com/striprouter/striprouter/board"
	"github.com/striprouter/striprouter/circuit"
	"github.com/striprouter/striprouter/layout"
)

// cutRequiredCircuit mirrors spec.md §8 scenario 3: two independent nets
// share column 2, so exactly one strip cut must separate them.
func cutRequiredCircuit() *circuit.Circuit {
	c := circuit.New()
	c.Board = board.New(5, 10)
	c.Packages["dip2"] = circuit.Package{Name: "dip2", Offsets: []board.Via{{X: 0, Y: 0}, {X: 0, Y: 3}}}
	c.Components["U1"] = circuit.Component{Name: "U1", PackageName: "dip2", Pos0: board.Via{X: 2, Y: 0}, DontCare: map[int]struct{}{}}
	c.Components["U2"] = circuit.Component{Name: "U2", PackageName: "dip2", Pos0: board.Via{X: 2, Y: 6}, DontCare: map[int]struct{}{}}
	c.ComponentOrder = []string{"U1", "U2"}
	c.Connections = []circuit.Connection{
		{A: circuit.ConnectionPoint{Component: "U1", PinIndex: 0}, B: circuit.ConnectionPoint{Component: "U1", PinIndex: 1}},
		{A: circuit.ConnectionPoint{Component: "U2", PinIndex: 0}, B: circuit.ConnectionPoint{Component: "U2", PinIndex: 1}},
	}
	return c
}

func TestFindStripCutsDetectsForeignNetBoundary(t *testing.T) {
	c := cutRequiredCircuit()
	r := New(c.Board, c, layout.DefaultSettings())
	lay, aborted := r.Route([]int{0, 1}, 1, nil)
	if aborted {
		t.Fatal("route should not abort with a nil stop channel")
	}
	if lay.NCompletedRoutes != 2 || lay.NFailedRoutes != 0 {
		t.Fatalf("expected both connections to complete, got completed=%d failed=%d",
			lay.NCompletedRoutes, lay.NFailedRoutes)
	}
	if len(lay.StripCuts) != 1 {
		t.Fatalf("got %d strip cuts, want exactly 1: %+v", len(lay.StripCuts), lay.StripCuts)
	}
	cut := lay.StripCuts[0]
	if cut.Above.X != 2 || cut.Below.X != 2 {
		t.Fatalf("expected the cut on column 2, got %+v", cut)
	}
}
