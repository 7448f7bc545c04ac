// Package dijkstra implements the multi-source Dijkstra map recalculation.
//
// Notes on implementation choices:
//
//   - All origins are seeded into one frontier, so the run computes the
//     cost to the NEAREST origin for every reachable point in a single
//     relaxation (no per-origin searches).
//   - Terrain multipliers are resolved per arc as the mean of both endpoint
//     multipliers; a non-finite product is treated as an impassable wall.
//   - We use a lazy decrease-key strategy: improved costs push duplicate
//     frontier entries and stale ones are skipped when popped.
//   - Frontier ties break by lower point id, keeping runs reproducible.
//   - The result holds the settled set only; tentative entries left in the
//     frontier when the run stops are discarded.
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/skison/dijkstramap/core"
)

// Recalculate runs one multi-source relaxation over g from the given
// origin points and returns the settled Result. It accepts functional
// options to customize the run (WithDestinations, WithMaximumCost,
// WithInitialCosts, WithTerrainWeights, WithTerminationPoints).
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. origins must be non-empty (ErrNoOrigins).
//  3. MaximumCost must not be negative or NaN (ErrBadMaximumCost).
//  4. InitialCosts entries must not be NaN (ErrBadInitialCost).
//  5. TerrainWeights values must not be negative or NaN (ErrBadTerrainWeight).
//  6. Every origin must exist in g (ErrPointNotFound).
//  7. Every termination point must exist in g (ErrPointNotFound).
//
// Validation failures abort before any work; no Result is produced.
// Disabled origins are skipped silently, so a call whose origins are all
// disabled succeeds with an empty Result.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Recalculate(g *core.Graph, origins []int, opts ...Option) (*Result, error) {
	// 1) Build Options from defaults plus functional overrides.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate graph is non-nil.
	if g == nil {
		return nil, ErrNilGraph
	}

	// 3) Validate at least one origin was provided.
	if len(origins) == 0 {
		return nil, ErrNoOrigins
	}

	// 4) Validate the cost cap.
	if cfg.MaximumCost < 0 || math.IsNaN(cfg.MaximumCost) {
		return nil, ErrBadMaximumCost
	}

	// 5) Validate seed costs.
	for i, c := range cfg.InitialCosts {
		if math.IsNaN(c) {
			return nil, fmt.Errorf("%w: index %d", ErrBadInitialCost, i)
		}
	}

	// 6) Validate the terrain table. +Inf is legal and means impassable.
	for tag, w := range cfg.TerrainWeights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("%w: tag %d", ErrBadTerrainWeight, tag)
		}
	}

	// 7) Validate every origin id before touching any state.
	for _, id := range origins {
		if !g.HasPoint(id) {
			return nil, fmt.Errorf("%w: origin %d", ErrPointNotFound, id)
		}
	}

	// 8) Validate termination points the same way.
	for _, id := range cfg.TerminationPoints {
		if !g.HasPoint(id) {
			return nil, fmt.Errorf("%w: termination point %d", ErrPointNotFound, id)
		}
	}

	// 9) Select the traversal direction once for the whole run.
	dir := core.Forward
	if cfg.InputIsDestination {
		dir = core.Backward
	}

	// 10) Initialize the runner with empty cost/predecessor/settled maps.
	r := &runner{
		g:       g,
		opts:    cfg,
		dir:     dir,
		dist:    make(map[int]float64, len(origins)),
		prev:    make(map[int]int, len(origins)),
		settled: make(map[int]bool, len(origins)),
		pq:      make(nodePQ, 0, len(origins)),
	}
	if len(cfg.TerminationPoints) > 0 {
		r.remaining = make(map[int]bool, len(cfg.TerminationPoints))
		for _, id := range cfg.TerminationPoints {
			r.remaining[id] = true
		}
	}

	// 11) Seed the frontier and run the main loop.
	r.seed(origins)
	r.process()

	// 12) Package the settled set into the Result.
	res := &Result{
		cost: make(map[int]float64, len(r.settled)),
		next: make(map[int]int, len(r.settled)),
	}
	for id := range r.settled {
		res.cost[id] = r.dist[id]
		res.next[id] = r.prev[id]
	}

	return res, nil
}

// runner holds the mutable state for a single recalculation.
type runner struct {
	g         *core.Graph     // input graph; read-only during the run
	opts      Options         // assembled configuration
	dir       core.Direction  // traversal direction for neighbor iteration
	dist      map[int]float64 // point id → best known cost
	prev      map[int]int     // point id → predecessor toward the inputs
	settled   map[int]bool    // points whose cost is final
	pq        nodePQ          // min-heap frontier, lazy decrease-key
	remaining map[int]bool    // unsettled termination points; nil when unused
}

// seed pushes each enabled origin with its positional initial cost.
// Duplicate origins keep the lower seed; disabled origins and seeds above
// MaximumCost contribute nothing.
func (r *runner) seed(origins []int) {
	heap.Init(&r.pq)
	for i, id := range origins {
		p, _ := r.g.Point(id) // validated in Recalculate
		if p.Disabled {
			continue
		}
		c := 0.0
		if i < len(r.opts.InitialCosts) {
			c = r.opts.InitialCosts[i]
		}
		if c > r.opts.MaximumCost {
			continue
		}
		if d, ok := r.dist[id]; ok && d <= c {
			continue
		}
		r.dist[id] = c
		r.prev[id] = NoDirection
		heap.Push(&r.pq, &nodeItem{id: id, cost: c})
	}
}

// process pops the minimum-cost point, settles it and relaxes its arcs
// until the frontier empties, the cost cap is crossed, or every
// termination point has been settled.
func (r *runner) process() {
	var u int
	var d float64
	for r.pq.Len() > 0 {
		// 1) Pop the smallest (cost, id) entry.
		item := heap.Pop(&r.pq).(*nodeItem)
		u = item.id
		d = item.cost

		// 2) Skip entries made stale by lazy decrease-key.
		if r.settled[u] {
			continue
		}

		// 3) The frontier minimum exceeds the cap: nothing left to settle.
		if d > r.opts.MaximumCost {
			break
		}

		// 4) Settle u; its cost is final.
		r.settled[u] = true

		// 5) Early out once the last termination point settles.
		if r.remaining != nil {
			delete(r.remaining, u)
			if len(r.remaining) == 0 {
				break
			}
		}

		// 6) Relax every arc out of u in the active direction.
		r.relax(u)
	}
}

// relax examines the arcs from settled point u and improves neighbor
// costs. Disabled endpoints and arcs whose terrain-resolved cost is not
// finite are skipped; candidates above MaximumCost are not enqueued.
func (r *runner) relax(u int) {
	arcs, _ := r.g.Neighbors(u, r.dir) // u is settled, so it exists
	pu, _ := r.g.Point(u)
	du := r.dist[u]
	var cand, step float64
	for _, a := range arcs {
		pv, ok := r.g.Point(a.To)
		if !ok || pv.Disabled {
			continue
		}

		// Resolve the traversal cost of this arc under the active terrain
		// table. 0 × Inf yields NaN; both NaN and Inf mean impassable.
		step = a.Weight * r.opts.TerrainWeights.EdgeMultiplier(pu.Terrain, pv.Terrain)
		if math.IsInf(step, 1) || math.IsNaN(step) {
			continue
		}

		cand = du + step
		if cand > r.opts.MaximumCost {
			continue
		}
		if old, ok := r.dist[a.To]; ok && cand >= old {
			continue
		}

		r.dist[a.To] = cand
		r.prev[a.To] = u
		heap.Push(&r.pq, &nodeItem{id: a.To, cost: cand})
	}
}

// nodeItem is one frontier entry: a point and its tentative cost.
type nodeItem struct {
	id   int
	cost float64
}

// nodePQ is a min-heap of *nodeItem ordered by cost, then id. Improved
// costs push duplicates; stale entries are skipped when popped (checked
// via the settled set).
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by smaller cost, breaking ties by smaller id.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].id < pq[j].id
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the smallest element from the heap.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
