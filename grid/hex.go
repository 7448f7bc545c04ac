package grid

import (
	"github.com/skison/dijkstramap/core"
)

// Offsets from one hex cell to its east neighbor and its two row-below
// neighbors, by row parity. Covering east and below from every cell pairs
// each two adjacent cells exactly once.
var (
	hexDownEven = [][2]int{{1, 0}, {-1, 1}, {0, 1}}
	hexDownOdd  = [][2]int{{1, 0}, {0, 1}, {1, 1}}
)

// AddHexagonalGrid stamps bounds.Width×bounds.Height pointy-top hex cells
// into g in odd-r offset layout: rows with odd absolute y shift right by
// half a cell, giving each cell 6 neighbors. One point per cell (ids from
// AvailablePointID, terrain from opts), bidirectional connections at the
// uniform opts.Weight; NaN or +Inf weight stamps points only. Cells do not
// connect to points that existed before the call.
//
// Stamping Rect{X: 1, Y: 4, Width: 2, Height: 3} lays out:
//
//	   / \     / \
//	 /     \ /     \
//	|  1,4  |  2,4  |
//	 \     / \     / \
//	   \ /     \ /     \
//	    |  1,5  |  2,5  |
//	   / \     / \     /
//	 /     \ /     \ /
//	|  1,6  |  2,6  |
//	 \     / \     /
//	   \ /     \ /
//
// Returns the absolute cell coordinate → point id mapping. For the "flat"
// orientation, swap Width with Height and X with Y in the returned coords.
//
// Errors: ErrNilGraph, ErrEmptyBounds, ErrBadCost (negative weight).
// Validation failures leave g untouched.
// Complexity: O(W×H) time and memory.
func AddHexagonalGrid(g *core.Graph, bounds Rect, opts HexOptions) (map[Coord]int, error) {
	// 1) Validate everything before mutating the graph.
	if g == nil {
		return nil, ErrNilGraph
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return nil, ErrEmptyBounds
	}
	if opts.Weight < 0 {
		return nil, ErrBadCost
	}

	// 2) Stamp one point per cell in row-major order.
	ids := stampPoints(g, bounds, opts.Terrain)
	if !classEnabled(opts.Weight) {
		return ids, nil
	}

	// 3) Connect east and row-below neighbors; parity follows the absolute
	//    y of the row, so split stamps stay consistent.
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		offsets := hexDownEven
		if y&1 != 0 {
			offsets = hexDownOdd
		}
		for x := bounds.X; x < bounds.X+bounds.Width; x++ {
			id := ids[Coord{X: x, Y: y}]
			for _, d := range offsets {
				nid, ok := ids[Coord{X: x + d[0], Y: y + d[1]}]
				if !ok {
					continue
				}
				_ = g.Connect(id, nid, opts.Weight, true)
			}
		}
	}

	return ids, nil
}
