package grid

import (
	"github.com/skison/dijkstramap/core"
)

// Neighbor offsets covering each square pair exactly once: east and south
// for the orthogonal class, the two east diagonals for the diagonal class.
var (
	squareOrtho = [][2]int{{1, 0}, {0, 1}}
	squareDiag  = [][2]int{{1, 1}, {1, -1}}
)

// AddSquareGrid stamps bounds.Width×bounds.Height cells into g: one point
// per cell (ids from AvailablePointID, terrain from opts) and bidirectional
// connections between neighboring cells of the stamped region. Orthogonal
// and diagonal neighbors form two classes priced by OrthogonalCost and
// DiagonalCost; a NaN or +Inf class cost stamps no connections of that
// class. Cells do not connect to points that existed before the call.
//
// Returns the absolute cell coordinate → point id mapping.
//
// Errors: ErrNilGraph, ErrEmptyBounds, ErrBadCost (negative class cost).
// Validation failures leave g untouched.
// Complexity: O(W×H) time and memory.
func AddSquareGrid(g *core.Graph, bounds Rect, opts SquareOptions) (map[Coord]int, error) {
	// 1) Validate everything before mutating the graph.
	if g == nil {
		return nil, ErrNilGraph
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return nil, ErrEmptyBounds
	}
	if opts.OrthogonalCost < 0 || opts.DiagonalCost < 0 {
		return nil, ErrBadCost
	}

	// 2) Stamp one point per cell in row-major order.
	ids := stampPoints(g, bounds, opts.Terrain)

	// 3) Connect the enabled classes; offsets pair each two cells once.
	if classEnabled(opts.OrthogonalCost) {
		connectOffsets(g, bounds, ids, squareOrtho, opts.OrthogonalCost)
	}
	if classEnabled(opts.DiagonalCost) {
		connectOffsets(g, bounds, ids, squareDiag, opts.DiagonalCost)
	}

	return ids, nil
}

// stampPoints adds one point per cell of bounds with the given terrain and
// returns the coordinate → id mapping. Ids are fresh, so AddPoint cannot
// collide.
func stampPoints(g *core.Graph, bounds Rect, terrain int) map[Coord]int {
	ids := make(map[Coord]int, bounds.Width*bounds.Height)
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		for x := bounds.X; x < bounds.X+bounds.Width; x++ {
			id := g.AvailablePointID()
			_ = g.AddPoint(id, terrain)
			ids[Coord{X: x, Y: y}] = id
		}
	}

	return ids
}

// connectOffsets stamps a bidirectional connection from every cell to each
// in-region neighbor at the given offsets. Endpoints exist and cost is
// finite non-negative, so Connect cannot fail.
func connectOffsets(g *core.Graph, bounds Rect, ids map[Coord]int, offsets [][2]int, cost float64) {
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		for x := bounds.X; x < bounds.X+bounds.Width; x++ {
			id := ids[Coord{X: x, Y: y}]
			for _, d := range offsets {
				nid, ok := ids[Coord{X: x + d[0], Y: y + d[1]}]
				if !ok {
					continue
				}
				_ = g.Connect(id, nid, cost, true)
			}
		}
	}
}
