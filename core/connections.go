package core

import (
	"math"
	"sort"
)

// Connect creates or overwrites the directed record source→target with the
// given weight; when bidirectional is true it also creates or overwrites
// target→source with the same weight. Weights must be non-negative and not
// NaN; +Inf is legal and marks the record impassable.
// Returns ErrPointNotFound if either endpoint is absent, ErrBadWeight for
// an invalid weight. The store is unchanged on any failure.
// Complexity: O(1)
func (g *Graph) Connect(source, target int, weight float64, bidirectional bool) error {
	if weight < 0 || math.IsNaN(weight) {
		return ErrBadWeight
	}
	if _, ok := g.points[source]; !ok {
		return ErrPointNotFound
	}
	if _, ok := g.points[target]; !ok {
		return ErrPointNotFound
	}
	g.out[source][target] = weight
	g.in[target][source] = weight
	if bidirectional {
		g.out[target][source] = weight
		g.in[source][target] = weight
	}

	return nil
}

// Disconnect removes the directed record source→target, and target→source
// as well when bidirectional is true. Removing a record that does not
// exist is a no-op, but unknown endpoint ids still fail with
// ErrPointNotFound.
// Complexity: O(1)
func (g *Graph) Disconnect(source, target int, bidirectional bool) error {
	if _, ok := g.points[source]; !ok {
		return ErrPointNotFound
	}
	if _, ok := g.points[target]; !ok {
		return ErrPointNotFound
	}
	delete(g.out[source], target)
	delete(g.in[target], source)
	if bidirectional {
		delete(g.out[target], source)
		delete(g.in[source], target)
	}

	return nil
}

// HasConnection reports whether the directed record source→target exists.
// The reverse direction is not consulted.
// Complexity: O(1)
func (g *Graph) HasConnection(source, target int) bool {
	_, ok := g.out[source][target]
	return ok
}

// ConnectionWeight returns the weight of the directed record source→target
// and whether it exists.
// Complexity: O(1)
func (g *Graph) ConnectionWeight(source, target int) (float64, bool) {
	w, ok := g.out[source][target]
	return w, ok
}

// ConnectionCount returns the number of directed records. A bidirectional
// connection counts as two.
// Complexity: O(V)
func (g *Graph) ConnectionCount() int {
	var n int
	for _, targets := range g.out {
		n += len(targets)
	}

	return n
}

// Connections returns value snapshots of every directed record, sorted by
// (source, target).
// Complexity: O(E log E)
func (g *Graph) Connections() []Connection {
	conns := make([]Connection, 0, g.ConnectionCount())
	for s, targets := range g.out {
		for t, w := range targets {
			conns = append(conns, Connection{Source: s, Target: t, Weight: w})
		}
	}
	sort.Slice(conns, func(i, j int) bool {
		if conns[i].Source != conns[j].Source {
			return conns[i].Source < conns[j].Source
		}
		return conns[i].Target < conns[j].Target
	})

	return conns
}

// Neighbors yields the arcs incident to the point in the requested
// traversal direction: Forward follows stored records out of id,
// Backward walks records into id against their direction. Each Arc
// carries the endpoint reached and the base weight of the underlying
// record. Arcs are sorted by endpoint id so iteration order is
// deterministic. Returns ErrPointNotFound if the id is absent.
// Complexity: O(degree log degree)
func (g *Graph) Neighbors(id int, dir Direction) ([]Arc, error) {
	if _, ok := g.points[id]; !ok {
		return nil, ErrPointNotFound
	}
	adj := g.out[id]
	if dir == Backward {
		adj = g.in[id]
	}
	arcs := make([]Arc, 0, len(adj))
	for to, w := range adj {
		arcs = append(arcs, Arc{To: to, Weight: w})
	}
	sort.Slice(arcs, func(i, j int) bool { return arcs[i].To < arcs[j].To })

	return arcs, nil
}
