// Package circuit holds the immutable, post-parse description of a
// stripboard design: packages, component placements, and the connection
// list. Grounded on original_source/src/circuit.rs.
package circuit

import "github.com/striprouter/striprouter/board"

// Package maps a name to an ordered vector of pin offsets (relative to the
// component's pin-0 position).
type Package struct {
	Name    string
	Offsets []board.Via
}

// Component binds a package name to an absolute pin-0 position, plus the
// set of pin indices the user has declared irrelevant.
type Component struct {
	Name        string
	PackageName string
	Pos0        board.Via
	DontCare    map[int]struct{}
}

// IsDontCare reports whether pinIdx (0-based) is marked don't-care.
func (c Component) IsDontCare(pinIdx int) bool {
	_, ok := c.DontCare[pinIdx]
	return ok
}

// ConnectionPoint names one endpoint of a Connection.
type ConnectionPoint struct {
	Component string
	PinIndex  int // 0-based
}

// Connection is a single requested electrical tie between two pins.
type Connection struct {
	A, B ConnectionPoint
}

// Circuit is the immutable description produced by the parser. It is
// treated as read-only for the remainder of its lifetime.
type Circuit struct {
	Board       board.Board
	Packages    map[string]Package
	Components  map[string]Component
	// ComponentOrder preserves declaration order for deterministic
	// iteration (footprint blocking, pin registration).
	ComponentOrder []string
	Connections    []Connection
	ParserErrors   []string
}

// New returns an empty Circuit ready for parser population.
func New() *Circuit {
	return &Circuit{
		Packages:   make(map[string]Package),
		Components: make(map[string]Component),
	}
}

// HasParserError reports whether parsing produced any error.
func (c *Circuit) HasParserError() bool {
	return len(c.ParserErrors) > 0
}

// PinPositions returns the absolute positions of every pin of the named
// component, in package order.
func (c *Circuit) PinPositions(componentName string) []board.Via {
	comp, ok := c.Components[componentName]
	if !ok {
		return nil
	}
	pkg := c.Packages[comp.PackageName]
	out := make([]board.Via, len(pkg.Offsets))
	for i, off := range pkg.Offsets {
		out[i] = comp.Pos0.Add(off)
	}
	return out
}

// PinPosition returns the absolute position of a single pin.
func (c *Circuit) PinPosition(componentName string, pinIndex int) (board.Via, bool) {
	comp, ok := c.Components[componentName]
	if !ok {
		return board.Via{}, false
	}
	pkg, ok := c.Packages[comp.PackageName]
	if !ok || pinIndex < 0 || pinIndex >= len(pkg.Offsets) {
		return board.Via{}, false
	}
	return comp.Pos0.Add(pkg.Offsets[pinIndex]), true
}

// Footprint returns the bounding box of the named component's pins, as
// (min, max) corners inclusive.
func (c *Circuit) Footprint(componentName string) (min, max board.Via, ok bool) {
	pins := c.PinPositions(componentName)
	if len(pins) == 0 {
		return board.Via{}, board.Via{}, false
	}
	min, max = pins[0], pins[0]
	for _, p := range pins[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max, true
}

// ConnectionVia resolves a connection to its two absolute via endpoints.
func (c *Circuit) ConnectionVia(conn Connection) (a, b board.Via, ok bool) {
	a, ok1 := c.ResolveEndpoint(conn.A)
	b, ok2 := c.ResolveEndpoint(conn.B)
	return a, b, ok1 && ok2
}

// ResolveEndpoint resolves a single connection endpoint to its via.
func (c *Circuit) ResolveEndpoint(cp ConnectionPoint) (board.Via, bool) {
	return c.PinPosition(cp.Component, cp.PinIndex)
}

// ConnectionViaVec returns the absolute start/end vias for every
// connection, in declaration order. Connections whose endpoints cannot be
// resolved are omitted (the parser already rejects such lines).
func (c *Circuit) ConnectionViaVec() []StartEndVia {
	out := make([]StartEndVia, 0, len(c.Connections))
	for _, conn := range c.Connections {
		a, b, ok := c.ConnectionVia(conn)
		if !ok {
			continue
		}
		out = append(out, StartEndVia{Start: a, End: b})
	}
	return out
}

// StartEndVia is a resolved connection endpoint pair.
type StartEndVia struct {
	Start, End board.Via
}

// ActivePins returns every non-don't-care pin position across all
// components, in ComponentOrder / package order.
func (c *Circuit) ActivePins() []board.Via {
	var out []board.Via
	for _, name := range c.ComponentOrder {
		comp := c.Components[name]
		pins := c.PinPositions(name)
		for i, p := range pins {
			if comp.IsDontCare(i) {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
