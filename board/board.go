// Package board holds the grid geometry shared by every other package:
// integer via coordinates and the flat-index mapping used to address
// per-cell state arrays.
package board

import "fmt"

// Via is a single hole in the stripboard grid.
type Via struct {
	X, Y int
}

// Add returns v shifted by the given offset.
func (v Via) Add(offset Via) Via {
	return Via{X: v.X + offset.X, Y: v.Y + offset.Y}
}

func (v Via) String() string {
	return fmt.Sprintf("%d,%d", v.X, v.Y)
}

// LayerVia pairs a via with the layer it sits on. The strip layer carries
// vertical copper continuity; the wire layer carries horizontal insulated
// jumpers.
type LayerVia struct {
	Via         Via
	IsWireLayer bool
}

func (lv LayerVia) String() string {
	if lv.IsWireLayer {
		return fmt.Sprintf("%s/wire", lv.Via)
	}
	return fmt.Sprintf("%s/strip", lv.Via)
}

// Board is the fixed grid dimensions. Immutable after construction.
type Board struct {
	W, H int
}

// New returns a Board with the given dimensions.
func New(w, h int) Board {
	return Board{W: w, H: h}
}

// Size is the number of cells on the board (one layer).
func (b Board) Size() int {
	return b.W * b.H
}

// Idx flattens a via into an index valid for a per-cell array of length
// Size().
func (b Board) Idx(v Via) int {
	return v.Y*b.W + v.X
}

// Contains reports whether v lies within the board bounds.
func (b Board) Contains(v Via) bool {
	return v.X >= 0 && v.X < b.W && v.Y >= 0 && v.Y < b.H
}

// ViaAt is the inverse of Idx.
func (b Board) ViaAt(idx int) Via {
	return Via{X: idx % b.W, Y: idx / b.W}
}
