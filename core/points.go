package core

import "sort"

// AddPoint inserts a new enabled point with the given id and terrain tag.
// Returns ErrNegativeID for id < 0 and ErrDuplicatePoint if the id is
// already present. The id counter advances past every id ever added, so
// AvailablePointID never collides with a live or removed point.
// Complexity: O(1)
func (g *Graph) AddPoint(id, terrain int) error {
	if id < 0 {
		return ErrNegativeID
	}
	if _, ok := g.points[id]; ok {
		return ErrDuplicatePoint
	}
	g.points[id] = &Point{ID: id, Terrain: terrain}
	g.out[id] = make(map[int]float64)
	g.in[id] = make(map[int]float64)
	if id >= g.nextID {
		g.nextID = id + 1
	}

	return nil
}

// AvailablePointID returns the next auto-assignable id:
// (highest id ever added)+1, or 0 for a graph that never held a point.
// Removing points does not lower it.
// Complexity: O(1)
func (g *Graph) AvailablePointID() int {
	return g.nextID
}

// RemovePoint deletes the point and every connection touching it, in both
// directions. Returns ErrPointNotFound if the id is absent.
// Complexity: O(degree)
func (g *Graph) RemovePoint(id int) error {
	if _, ok := g.points[id]; !ok {
		return ErrPointNotFound
	}
	for t := range g.out[id] {
		delete(g.in[t], id)
	}
	for s := range g.in[id] {
		delete(g.out[s], id)
	}
	delete(g.out, id)
	delete(g.in, id)
	delete(g.points, id)

	return nil
}

// HasPoint reports whether the id is present.
// Complexity: O(1)
func (g *Graph) HasPoint(id int) bool {
	_, ok := g.points[id]
	return ok
}

// Point returns a value snapshot of one stored point and whether it exists.
// Complexity: O(1)
func (g *Graph) Point(id int) (Point, bool) {
	p, ok := g.points[id]
	if !ok {
		return Point{}, false
	}

	return *p, true
}

// PointCount returns the number of stored points.
// Complexity: O(1)
func (g *Graph) PointCount() int {
	return len(g.points)
}

// PointIDs returns all stored ids in ascending order.
// Complexity: O(V log V)
func (g *Graph) PointIDs() []int {
	ids := make([]int, 0, len(g.points))
	for id := range g.points {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// Points returns value snapshots of all stored points, sorted by id.
// Mutating the returned slice does not affect the graph.
// Complexity: O(V log V)
func (g *Graph) Points() []Point {
	pts := make([]Point, 0, len(g.points))
	for _, p := range g.points {
		pts = append(pts, *p)
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].ID < pts[j].ID })

	return pts
}

// EnablePoint marks the point as participating in future recalculations.
// Returns ErrPointNotFound if the id is absent.
// Complexity: O(1)
func (g *Graph) EnablePoint(id int) error {
	p, ok := g.points[id]
	if !ok {
		return ErrPointNotFound
	}
	p.Disabled = false

	return nil
}

// DisablePoint excludes the point from future recalculations, both as a
// source and as a relaxation candidate. Its stored connections survive, so
// EnablePoint restores prior connectivity.
// Returns ErrPointNotFound if the id is absent.
// Complexity: O(1)
func (g *Graph) DisablePoint(id int) error {
	p, ok := g.points[id]
	if !ok {
		return ErrPointNotFound
	}
	p.Disabled = true

	return nil
}

// IsDisabled reports whether the point is currently excluded from
// recalculations. Returns ErrPointNotFound if the id is absent.
// Complexity: O(1)
func (g *Graph) IsDisabled(id int) (bool, error) {
	p, ok := g.points[id]
	if !ok {
		return false, ErrPointNotFound
	}

	return p.Disabled, nil
}

// SetTerrain replaces the point's terrain tag.
// Returns ErrPointNotFound if the id is absent.
// Complexity: O(1)
func (g *Graph) SetTerrain(id, terrain int) error {
	p, ok := g.points[id]
	if !ok {
		return ErrPointNotFound
	}
	p.Terrain = terrain

	return nil
}

// Terrain returns the point's terrain tag.
// Returns ErrPointNotFound if the id is absent.
// Complexity: O(1)
func (g *Graph) Terrain(id int) (int, error) {
	p, ok := g.points[id]
	if !ok {
		return 0, ErrPointNotFound
	}

	return p.Terrain, nil
}
