package dijkstramap

import (
	"github.com/skison/dijkstramap/core"
	"github.com/skison/dijkstramap/dijkstra"
	"github.com/skison/dijkstramap/grid"
)

// Map bundles one graph with the result of its latest recalculation,
// mirroring the procedural API most hosts want: mutate, recalculate,
// query. A Map is single-owner; wrap it in your own lock to share it
// across goroutines.
type Map struct {
	graph *core.Graph
	last  *dijkstra.Result
}

// New returns an empty Map ready for use.
func New() *Map {
	return &Map{graph: core.NewGraph()}
}

// FromGraph wraps an existing graph, with no result yet. The Map takes
// ownership of g; mutate it through the Map afterwards. Typical use:
// rehydrating a stored snapshot.
func FromGraph(g *core.Graph) (*Map, error) {
	if g == nil {
		return nil, core.ErrNilGraph
	}

	return &Map{graph: g}, nil
}

// Graph exposes the underlying graph for builders, stores and direct
// access to the full core API.
func (m *Map) Graph() *core.Graph {
	return m.graph
}

// Clone returns an independent deep copy of the Map. The latest result is
// carried over; results are immutable, so both copies may query it freely.
// Complexity: O(V + E)
func (m *Map) Clone() *Map {
	return &Map{graph: m.graph.Clone(), last: m.last}
}

// CopyFrom replaces this Map's graph and latest result with deep copies of
// src's state. Typical use: one shared template map, one cheap working
// copy per unit type.
// Complexity: O(V + E)
func (m *Map) CopyFrom(src *Map) error {
	if src == nil {
		return core.ErrNilGraph
	}
	if err := m.graph.CopyFrom(src.graph); err != nil {
		return err
	}
	m.last = src.last

	return nil
}

// Clear removes every point and connection and drops the latest result.
// Freed ids become available again.
func (m *Map) Clear() {
	m.graph.Clear()
	m.last = nil
}

// ------------------------------------------------------------------------
// Mutation
// ------------------------------------------------------------------------

// AddPoint stores a new point with the default terrain.
func (m *Map) AddPoint(id int) error {
	return m.graph.AddPoint(id, core.DefaultTerrain)
}

// AddPointWithTerrain stores a new point carrying the given terrain tag.
func (m *Map) AddPointWithTerrain(id, terrain int) error {
	return m.graph.AddPoint(id, terrain)
}

// AddNewPoint stores a point under the next free id and returns that id.
func (m *Map) AddNewPoint() int {
	id := m.graph.AvailablePointID()
	_ = m.graph.AddPoint(id, core.DefaultTerrain) // fresh id cannot collide

	return id
}

// AvailablePointID returns the next id AddNewPoint would assign.
func (m *Map) AvailablePointID() int {
	return m.graph.AvailablePointID()
}

// RemovePoint deletes a point and every connection touching it.
func (m *Map) RemovePoint(id int) error {
	return m.graph.RemovePoint(id)
}

// EnablePoint clears the disabled flag; the point takes part in
// recalculation again.
func (m *Map) EnablePoint(id int) error {
	return m.graph.EnablePoint(id)
}

// DisablePoint marks the point as an obstacle: recalculation flows
// neither into nor out of it while its connections stay stored.
func (m *Map) DisablePoint(id int) error {
	return m.graph.DisablePoint(id)
}

// SetTerrain reassigns the point's terrain tag.
func (m *Map) SetTerrain(id, terrain int) error {
	return m.graph.SetTerrain(id, terrain)
}

// ConnectPoints stores a connection of the given weight, optionally in
// both directions. Existing records are overwritten.
func (m *Map) ConnectPoints(source, target int, weight float64, bidirectional bool) error {
	return m.graph.Connect(source, target, weight, bidirectional)
}

// RemoveConnection deletes the source→target record, and the reverse one
// when bidirectional is set.
func (m *Map) RemoveConnection(source, target int, bidirectional bool) error {
	return m.graph.Disconnect(source, target, bidirectional)
}

// AddSquareGrid stamps a square grid into the map. See grid.AddSquareGrid.
func (m *Map) AddSquareGrid(bounds grid.Rect, opts grid.SquareOptions) (map[grid.Coord]int, error) {
	return grid.AddSquareGrid(m.graph, bounds, opts)
}

// AddHexagonalGrid stamps a hexagonal grid into the map. See
// grid.AddHexagonalGrid.
func (m *Map) AddHexagonalGrid(bounds grid.Rect, opts grid.HexOptions) (map[grid.Coord]int, error) {
	return grid.AddHexagonalGrid(m.graph, bounds, opts)
}

// ------------------------------------------------------------------------
// Computation
// ------------------------------------------------------------------------

// Recalculate recomputes the cost field from the given origin points and
// replaces the latest result. On error the previous result stays
// queryable untouched.
// Complexity: O((V + E) log V)
func (m *Map) Recalculate(origins []int, opts ...dijkstra.Option) error {
	res, err := dijkstra.Recalculate(m.graph, origins, opts...)
	if err != nil {
		return err
	}
	m.last = res

	return nil
}

// RecalculateFrom is Recalculate with a single origin.
func (m *Map) RecalculateFrom(origin int, opts ...dijkstra.Option) error {
	return m.Recalculate([]int{origin}, opts...)
}

// ------------------------------------------------------------------------
// Queries
// ------------------------------------------------------------------------

// SettledCount reports how many points the latest recalculation settled,
// 0 when none has run yet.
func (m *Map) SettledCount() int {
	return m.last.Len()
}

// CostAt returns the cost recorded for the point by the latest
// recalculation, or +Inf when the point was not reached (or nothing has
// been recalculated yet).
func (m *Map) CostAt(id int) float64 {
	return m.last.CostAt(id)
}

// DirectionAt returns the next point to step to from id toward the
// nearest input, or dijkstra.NoDirection when there is nowhere to go.
func (m *Map) DirectionAt(id int) int {
	return m.last.DirectionAt(id)
}

// CostsAt is the batch form of CostAt, preserving input order.
func (m *Map) CostsAt(ids []int) []float64 {
	return m.last.CostsAt(ids)
}

// DirectionsAt is the batch form of DirectionAt, preserving input order.
func (m *Map) DirectionsAt(ids []int) []int {
	return m.last.DirectionsAt(ids)
}

// CostMap returns a copy of the latest cost table; unreached points are
// absent.
func (m *Map) CostMap() map[int]float64 {
	return m.last.CostMap()
}

// DirectionMap returns a copy of the latest direction table.
func (m *Map) DirectionMap() map[int]int {
	return m.last.DirectionMap()
}

// PointsWithCostBetween returns the points whose latest cost lies in the
// inclusive range [min, max], sorted by cost then id.
func (m *Map) PointsWithCostBetween(min, max float64) []int {
	return m.last.PointsWithCostBetween(min, max)
}

// ShortestPathFrom returns the steps from id to the nearest input under
// the latest result, excluding id itself. Empty when id is an input or
// was not reached.
func (m *Map) ShortestPathFrom(id int) []int {
	return m.last.PathFrom(id)
}

// HasPoint reports whether the point is stored.
func (m *Map) HasPoint(id int) bool {
	return m.graph.HasPoint(id)
}

// HasConnection reports whether the directed record source→target exists.
func (m *Map) HasConnection(source, target int) bool {
	return m.graph.HasConnection(source, target)
}

// IsPointDisabled reports the point's disabled flag.
func (m *Map) IsPointDisabled(id int) (bool, error) {
	return m.graph.IsDisabled(id)
}

// TerrainForPoint returns the point's terrain tag.
func (m *Map) TerrainForPoint(id int) (int, error) {
	return m.graph.Terrain(id)
}

// PointCount returns the number of stored points.
func (m *Map) PointCount() int {
	return m.graph.PointCount()
}
