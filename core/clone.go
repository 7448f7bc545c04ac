package core

// Clear resets the graph to the empty state: no points, no connections,
// and the id counter back at zero.
// Complexity: O(1) for map reallocation.
func (g *Graph) Clear() {
	g.points = make(map[int]*Point)
	g.out = make(map[int]map[int]float64)
	g.in = make(map[int]map[int]float64)
	g.nextID = 0
}

// CopyFrom clears the receiver and deep-copies every point (id, terrain,
// enabled state) and every directed record from src. After the copy the
// two graphs share no mutable state, so mutating one never affects the
// other. The id counter is carried over, keeping AvailablePointID stable
// across the copy even when high ids were removed from src.
// Returns ErrNilGraph when src is nil.
// Complexity: O(V + E)
func (g *Graph) CopyFrom(src *Graph) error {
	if src == nil {
		return ErrNilGraph
	}
	g.Clear()
	for id, p := range src.points {
		cp := *p
		g.points[id] = &cp
		g.out[id] = make(map[int]float64, len(src.out[id]))
		g.in[id] = make(map[int]float64, len(src.in[id]))
	}
	for s, targets := range src.out {
		for t, w := range targets {
			g.out[s][t] = w
			g.in[t][s] = w
		}
	}
	g.nextID = src.nextID

	return nil
}

// Clone returns a deep copy of the graph.
// Complexity: O(V + E)
func (g *Graph) Clone() *Graph {
	clone := NewGraph()
	_ = clone.CopyFrom(g) // receiver is never nil here

	return clone
}
