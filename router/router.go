// Package router drives a single routing attempt: given a Circuit and an
// ordering of its connections, it runs one uniform-cost search per
// connection, commits the result against shared per-attempt state (wire
// blocking, wire-jump shortcuts, net membership), and produces a Layout.
// Grounded on original_source/src/router.rs and ucs.rs.
package router

import (
	"github.com/striprouter/striprouter/board"
	"github.com/striprouter/striprouter/circuit"
	"github.com/striprouter/striprouter/layout"
	"github.com/striprouter/striprouter/nets"
)

// Router owns all per-attempt routing state. It is thread-local: a fresh
// Router is built for every ordering a worker evaluates and discarded
// with it (SPEC_FULL.md §5).
type Router struct {
	board    board.Board
	circuit  *circuit.Circuit
	settings layout.Settings

	nets *nets.Nets

	wireBlocked []bool
	wireJump    []int // flat board index of the jump partner, or -1

	activePins map[board.Via]struct{}
}

const noJump = -1

// New builds a Router ready for Setup.
func New(b board.Board, c *circuit.Circuit, settings layout.Settings) *Router {
	r := &Router{
		board:       b,
		circuit:     c,
		settings:    settings,
		nets:        nets.New(b),
		wireBlocked: make([]bool, b.Size()),
		wireJump:    make([]int, b.Size()),
		activePins:  make(map[board.Via]struct{}),
	}
	for i := range r.wireJump {
		r.wireJump[i] = noJump
	}
	return r
}

// Setup performs the three one-time preparations spec.md §4.2 requires
// before any connection is attempted: block component footprints on the
// wire layer, seed nets from the full (unordered) connection list, and
// register every active pin.
func (r *Router) Setup() {
	r.blockComponentFootprints()
	r.seedNetsFromConnections()
	r.registerActivePins()
}

func (r *Router) blockComponentFootprints() {
	for _, name := range r.circuit.ComponentOrder {
		min, max, ok := r.circuit.Footprint(name)
		if !ok {
			continue
		}
		for y := min.Y; y <= max.Y; y++ {
			for x := min.X; x <= max.X; x++ {
				v := board.Via{X: x, Y: y}
				if r.board.Contains(v) {
					r.wireBlocked[r.board.Idx(v)] = true
				}
			}
		}
	}
}

func (r *Router) seedNetsFromConnections() {
	for _, conn := range r.circuit.Connections {
		a, b, ok := r.circuit.ConnectionVia(conn)
		if !ok {
			continue
		}
		r.nets.Connect(a, b)
	}
}

func (r *Router) registerActivePins() {
	for _, v := range r.circuit.ActivePins() {
		r.activePins[v] = struct{}{}
		r.nets.RegisterPin(v)
	}
}

func (r *Router) isActivePin(v board.Via) bool {
	_, ok := r.activePins[v]
	return ok
}

// isAvailable is the predicate UCS consults for every candidate neighbor,
// spec.md §4.2.
func (r *Router) isAvailable(node board.LayerVia, startPin board.Via) bool {
	if !r.board.Contains(node.Via) {
		return false
	}
	if node.IsWireLayer {
		return !r.wireBlocked[r.board.Idx(node.Via)]
	}
	if r.nets.HasConnection(node.Via) && !r.nets.IsConnected(node.Via, startPin) {
		return false
	}
	if r.isActivePin(node.Via) && !r.nets.IsConnected(node.Via, startPin) {
		return false
	}
	return true
}

func (r *Router) wireJumpAt(v board.Via) (board.Via, bool) {
	j := r.wireJump[r.board.Idx(v)]
	if j == noJump {
		return board.Via{}, false
	}
	return r.board.ViaAt(j), true
}

func (r *Router) setWireJump(a, b board.Via) {
	r.wireJump[r.board.Idx(a)] = r.board.Idx(b)
	r.wireJump[r.board.Idx(b)] = r.board.Idx(a)
}

func (r *Router) blockSteps(steps []board.LayerVia) {
	for _, s := range steps {
		if s.IsWireLayer {
			r.wireBlocked[r.board.Idx(s.Via)] = true
		}
	}
}

func (r *Router) commitSections(sections []layout.Section) {
	for _, s := range sections {
		if s.IsWireLayer {
			r.setWireJump(s.Start, s.End)
		}
	}
}

// Route runs the full attempt: one UCS search per connection index in the
// order ordering supplies, then strip-cut derivation. stop is polled
// between connections (spec.md §5); when it fires, Route returns the
// partial layout with aborted=true and the caller decides, per its own
// staleness policy, whether to keep or discard it.
func (r *Router) Route(ordering []int, baseTimestamp int64, stop <-chan struct{}) (lay *layout.Layout, aborted bool) {
	lay = &layout.Layout{
		Settings:      r.settings,
		Sections:      make([][]layout.Section, 0, len(ordering)),
		RouteCost:     make([]int, 0, len(ordering)),
		Nets:          r.nets,
		BaseTimestamp: baseTimestamp,
	}

	r.Setup()

	for _, connIdx := range ordering {
		select {
		case <-stop:
			return lay, true
		default:
		}

		conn := r.circuit.Connections[connIdx]
		start, end, ok := r.circuit.ConnectionVia(conn)
		if !ok {
			lay.Sections = append(lay.Sections, nil)
			lay.RouteStatusVec = append(lay.RouteStatusVec, layout.RouteFailed)
			lay.RouteCost = append(lay.RouteCost, 0)
			lay.NFailedRoutes++
			continue
		}

		steps, cost, err := r.findLowestCostRoute(start, end)
		if err != nil || steps == nil {
			// A non-nil err is ErrStuck, an internal-invariant violation
			// (spec.md §7, kind 5). It is recorded exactly like an
			// unreachable endpoint: the connection counts as failed and
			// the attempt goes on with the remaining connections. The
			// error value itself is not kept on the layout.
			lay.Sections = append(lay.Sections, nil)
			lay.RouteStatusVec = append(lay.RouteStatusVec, layout.RouteFailed)
			lay.RouteCost = append(lay.RouteCost, 0)
			lay.NFailedRoutes++
			continue
		}

		r.blockSteps(steps)
		r.nets.ConnectRoute(steps)
		sections := condense(steps)
		r.commitSections(sections)

		lay.Sections = append(lay.Sections, sections)
		lay.RouteStatusVec = append(lay.RouteStatusVec, layout.RouteOK)
		lay.RouteCost = append(lay.RouteCost, cost)
		lay.NCompletedRoutes++
	}

	lay.StripCuts = r.findStripCuts()
	return lay, false
}
