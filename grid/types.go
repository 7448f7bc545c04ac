// Package grid defines core types, options, and sentinel errors
// for the grid builders.
package grid

import (
	"errors"
	"math"

	"github.com/skison/dijkstramap/core"
)

// Sentinel errors for grid builders.
var (
	// ErrNilGraph indicates the destination graph is nil.
	ErrNilGraph = errors.New("grid: graph is nil")
	// ErrEmptyBounds indicates a Rect spanning no cells.
	ErrEmptyBounds = errors.New("grid: bounds must span at least one cell")
	// ErrBadCost indicates a negative connection cost.
	ErrBadCost = errors.New("grid: connection costs must be non-negative")
)

// Rect selects the cells to stamp: Width×Height cells whose lowest
// coordinate is (X, Y). X and Y may be negative; hex row parity follows
// the absolute y coordinate, so stamping the same region in pieces yields
// a consistent layout.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Coord is an absolute cell coordinate within a stamped region.
type Coord struct {
	X, Y int
}

// SquareOptions contains tunable parameters for AddSquareGrid.
type SquareOptions struct {
	// Terrain is assigned to every stamped point.
	Terrain int
	// OrthogonalCost prices connections to the 4 edge-sharing neighbors.
	OrthogonalCost float64
	// DiagonalCost prices connections to the 4 corner-sharing neighbors.
	// NaN or +Inf stamps no diagonal connections at all.
	DiagonalCost float64
}

// DefaultSquareOptions returns a SquareOptions with default settings:
// default terrain, unit orthogonal cost, diagonals off.
func DefaultSquareOptions() SquareOptions {
	return SquareOptions{
		Terrain:        core.DefaultTerrain,
		OrthogonalCost: 1,
		DiagonalCost:   math.Inf(1),
	}
}

// HexOptions contains tunable parameters for AddHexagonalGrid.
type HexOptions struct {
	// Terrain is assigned to every stamped point.
	Terrain int
	// Weight prices all 6 neighbor connections uniformly.
	Weight float64
}

// DefaultHexOptions returns a HexOptions with default settings:
// default terrain, unit weight.
func DefaultHexOptions() HexOptions {
	return HexOptions{
		Terrain: core.DefaultTerrain,
		Weight:  1,
	}
}

// classEnabled reports whether a connection class with the given cost
// should be stamped. Negative costs are rejected earlier; NaN and +Inf
// mean the class is off.
func classEnabled(cost float64) bool {
	return !math.IsInf(cost, 1) && !math.IsNaN(cost)
}
