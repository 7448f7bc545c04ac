package dijkstra

import (
	"math"
	"sort"
)

// Result is the output of one recalculation: per settled point, the total
// cost to the nearest input and the next point to step to in order to
// approach it. Points that were never settled are absent; queries resolve
// them to +Inf cost and NoDirection.
//
// All methods are nil-receiver-safe: a nil *Result behaves as an empty
// table, so callers may hold "no recalculation yet" as nil. A Result is
// immutable and safe for concurrent reads.
type Result struct {
	cost map[int]float64
	next map[int]int
}

// Len returns the number of settled points.
// Complexity: O(1)
func (r *Result) Len() int {
	if r == nil {
		return 0
	}

	return len(r.cost)
}

// CostAt returns the cost recorded for the point, or +Inf when the point
// was not settled.
// Complexity: O(1)
func (r *Result) CostAt(id int) float64 {
	if r != nil {
		if c, ok := r.cost[id]; ok {
			return c
		}
	}

	return math.Inf(1)
}

// DirectionAt returns the next point to step to from id toward the
// nearest input, or NoDirection when id is an input itself or was not
// settled.
// Complexity: O(1)
func (r *Result) DirectionAt(id int) int {
	if r != nil {
		if n, ok := r.next[id]; ok {
			return n
		}
	}

	return NoDirection
}

// CostsAt is the batch form of CostAt, preserving input order.
// Complexity: O(len(ids))
func (r *Result) CostsAt(ids []int) []float64 {
	costs := make([]float64, len(ids))
	for i, id := range ids {
		costs[i] = r.CostAt(id)
	}

	return costs
}

// DirectionsAt is the batch form of DirectionAt, preserving input order.
// Complexity: O(len(ids))
func (r *Result) DirectionsAt(ids []int) []int {
	dirs := make([]int, len(ids))
	for i, id := range ids {
		dirs[i] = r.DirectionAt(id)
	}

	return dirs
}

// CostMap returns a copy of the full cost table. Unsettled points are
// absent rather than emitted as +Inf.
// Complexity: O(V)
func (r *Result) CostMap() map[int]float64 {
	if r == nil {
		return map[int]float64{}
	}
	m := make(map[int]float64, len(r.cost))
	for id, c := range r.cost {
		m[id] = c
	}

	return m
}

// DirectionMap returns a copy of the full predecessor table; only settled
// points appear.
// Complexity: O(V)
func (r *Result) DirectionMap() map[int]int {
	if r == nil {
		return map[int]int{}
	}
	m := make(map[int]int, len(r.next))
	for id, n := range r.next {
		m[id] = n
	}

	return m
}

// PointsWithCostBetween returns the settled points whose cost lies in the
// inclusive range [min, max], sorted ascending by cost with ties broken by
// id.
// Complexity: O(V log V)
func (r *Result) PointsWithCostBetween(min, max float64) []int {
	if r == nil {
		return nil
	}
	ids := make([]int, 0)
	for id, c := range r.cost {
		if c >= min && c <= max {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		ci, cj := r.cost[ids[i]], r.cost[ids[j]]
		if ci != cj {
			return ci < cj
		}
		return ids[i] < ids[j]
	})

	return ids
}

// PathFrom walks predecessor links from id to an input point, returning
// the steps in traversal order. The starting id itself is excluded; the
// result is empty when id is an input, unreachable, or absent.
//
// Predecessor links form a forest rooted at the inputs, so the walk always
// terminates.
// Complexity: O(path length)
func (r *Result) PathFrom(id int) []int {
	if r == nil {
		return nil
	}
	cur, ok := r.next[id]
	if !ok {
		return nil
	}
	var path []int
	for cur != NoDirection {
		path = append(path, cur)
		cur = r.next[cur]
	}

	return path
}
