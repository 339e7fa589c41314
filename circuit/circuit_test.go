package circuit

import (
	"testing"

	"github.com/striprouter/striprouter/board"
)

func twoPinCircuit() *Circuit {
	c := New()
	c.Board = board.New(5, 5)
	c.Packages["dip2"] = Package{Name: "dip2", Offsets: []board.Via{{X: 0, Y: 0}, {X: 0, Y: 3}}}
	c.Components["U1"] = Component{Name: "U1", PackageName: "dip2", Pos0: board.Via{X: 2, Y: 1}, DontCare: map[int]struct{}{}}
	c.ComponentOrder = []string{"U1"}
	c.Connections = []Connection{{A: ConnectionPoint{"U1", 0}, B: ConnectionPoint{"U1", 1}}}
	return c
}

func TestPinPositions(t *testing.T) {
	c := twoPinCircuit()
	pins := c.PinPositions("U1")
	want := []board.Via{{X: 2, Y: 1}, {X: 2, Y: 4}}
	if len(pins) != 2 || pins[0] != want[0] || pins[1] != want[1] {
		t.Fatalf("got %v, want %v", pins, want)
	}
}

func TestFootprint(t *testing.T) {
	c := twoPinCircuit()
	min, max, ok := c.Footprint("U1")
	if !ok {
		t.Fatal("expected footprint ok")
	}
	if min != (board.Via{X: 2, Y: 1}) || max != (board.Via{X: 2, Y: 4}) {
		t.Fatalf("got min=%v max=%v", min, max)
	}
}

func TestConnectionVia(t *testing.T) {
	c := twoPinCircuit()
	a, b, ok := c.ConnectionVia(c.Connections[0])
	if !ok {
		t.Fatal("expected resolvable connection")
	}
	if a != (board.Via{X: 2, Y: 1}) || b != (board.Via{X: 2, Y: 4}) {
		t.Fatalf("got a=%v b=%v", a, b)
	}
}

func TestActivePinsExcludesDontCare(t *testing.T) {
	c := twoPinCircuit()
	comp := c.Components["U1"]
	comp.DontCare[1] = struct{}{}
	c.Components["U1"] = comp

	pins := c.ActivePins()
	if len(pins) != 1 || pins[0] != (board.Via{X: 2, Y: 1}) {
		t.Fatalf("got %v, want exactly pin 0", pins)
	}
}

func TestResolveEndpointUnknownComponent(t *testing.T) {
	c := twoPinCircuit()
	if _, ok := c.ResolveEndpoint(ConnectionPoint{Component: "missing", PinIndex: 0}); ok {
		t.Fatal("expected ok=false for unknown component")
	}
}
