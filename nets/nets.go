// Package nets implements the union-find structure that tracks electrical
// equivalence classes ("nets") over board vias as a routing attempt
// commits segments. Grounded on original_source/src/nets.rs: the same
// four-case connect, the same append-only class vector, the same
// rewrite-on-unification behavior.
package nets

import "github.com/striprouter/striprouter/board"

const none = -1

// Nets is per-attempt state: it is created fresh for every routing attempt
// and discarded with it.
type Nets struct {
	b       board.Board
	classOf []int              // per-cell class index, or none
	classes []map[board.Via]struct{}
}

// New creates an empty Nets over the given board.
func New(b board.Board) *Nets {
	n := &Nets{
		b:       b,
		classOf: make([]int, b.Size()),
	}
	for i := range n.classOf {
		n.classOf[i] = none
	}
	return n
}

func (n *Nets) createClass() int {
	n.classes = append(n.classes, make(map[board.Via]struct{}))
	return len(n.classes) - 1
}

// Connect unifies the classes containing a and b, creating either or both
// as needed. Four cases, exactly as in the original: both unclassed,
// either one classed, or both classed in different sets (the unification
// case, which rewrites every cell referencing the absorbed class).
func (n *Nets) Connect(a, b board.Via) {
	ca := n.classOf[n.b.Idx(a)]
	cb := n.classOf[n.b.Idx(b)]

	switch {
	case ca == none && cb == none:
		c := n.createClass()
		n.classes[c][a] = struct{}{}
		n.classes[c][b] = struct{}{}
		n.classOf[n.b.Idx(a)] = c
		n.classOf[n.b.Idx(b)] = c
	case ca != none && cb == none:
		n.classes[ca][b] = struct{}{}
		n.classOf[n.b.Idx(b)] = ca
	case ca == none && cb != none:
		n.classes[cb][a] = struct{}{}
		n.classOf[n.b.Idx(a)] = cb
	case ca != cb:
		for v := range n.classes[cb] {
			n.classes[ca][v] = struct{}{}
		}
		for i, c := range n.classOf {
			if c == cb {
				n.classOf[i] = ca
			}
		}
	}
}

// ConnectRoute joins the route's origin to every strip-layer waypoint of a
// committed step sequence, per spec.md §4.1.
func (n *Nets) ConnectRoute(steps []board.LayerVia) {
	if len(steps) == 0 {
		return
	}
	origin := steps[0].Via
	for _, step := range steps[1:] {
		if !step.IsWireLayer {
			n.Connect(origin, step.Via)
		}
	}
}

// RegisterPin inserts v into its class, creating one if necessary.
func (n *Nets) RegisterPin(v board.Via) {
	c := n.classOf[n.b.Idx(v)]
	if c == none {
		c = n.createClass()
		n.classOf[n.b.Idx(v)] = c
	}
	n.classes[c][v] = struct{}{}
}

// IsConnected reports whether a and b share a (non-empty) class.
func (n *Nets) IsConnected(a, b board.Via) bool {
	c := n.classOf[n.b.Idx(a)]
	if c == none {
		return false
	}
	_, ok := n.classes[c][b]
	return ok
}

// HasConnection reports whether v belongs to any class.
func (n *Nets) HasConnection(v board.Via) bool {
	return n.classOf[n.b.Idx(v)] != none
}

// ClassOf returns the class index for v, or the ok=false if v is unclassed.
func (n *Nets) ClassOf(v board.Via) (int, bool) {
	c := n.classOf[n.b.Idx(v)]
	return c, c != none
}
