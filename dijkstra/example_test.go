// Package dijkstra_test provides runnable examples for the recalculation
// and its result queries. Each example is executable via "go test -run
// Example", showing both code and expected output.
package dijkstra_test

import (
	"fmt"
	"math"

	"github.com/skison/dijkstramap/core"
	"github.com/skison/dijkstramap/dijkstra"
)

// ExampleRecalculate demonstrates a single-input recalculation on a short
// chain of points.
// Complexity: O((V+E) log V).
func ExampleRecalculate() {
	// 1) Build three points connected in a line: 0-1-2.
	g := core.NewGraph()
	for id := 0; id < 3; id++ {
		g.AddPoint(id, core.DefaultTerrain)
	}
	g.Connect(0, 1, 1, true)
	g.Connect(1, 2, 1, true)

	// 2) Recalculate with point 0 as the input.
	res, err := dijkstra.Recalculate(g, []int{0})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 3) Point 2 lies two unit steps away and steps back through 1.
	fmt.Printf("cost=%v step=%d\n", res.CostAt(2), res.DirectionAt(2))
	// Output: cost=2 step=1
}

// ExampleRecalculate_multipleInputs seeds the frontier with both ends of
// a corridor; interior costs form a valley around the nearer input.
func ExampleRecalculate_multipleInputs() {
	// Corridor: (0)─(1)─(2)─(3)─(4), inputs at both ends.
	g := core.NewGraph()
	for id := 0; id < 5; id++ {
		g.AddPoint(id, core.DefaultTerrain)
	}
	for id := 1; id < 5; id++ {
		g.Connect(id-1, id, 1, true)
	}

	res, _ := dijkstra.Recalculate(g, []int{0, 4})
	fmt.Println(res.CostsAt([]int{0, 1, 2, 3, 4}))
	// Output: [0 1 2 1 0]
}

// ExampleRecalculate_terrainWeights shows terrain tags scaling movement
// cost. A connection's weight is multiplied by the mean of its endpoint
// multipliers, so stepping into a swamp from open ground averages the two.
func ExampleRecalculate_terrainWeights() {
	const swamp = 3

	g := core.NewGraph()
	g.AddPoint(0, core.DefaultTerrain)
	g.AddPoint(1, swamp)
	g.AddPoint(2, swamp)
	g.Connect(0, 1, 1, true)
	g.Connect(1, 2, 1, true)

	res, _ := dijkstra.Recalculate(g, []int{0},
		dijkstra.WithTerrainWeights(map[int]float64{swamp: 5}))

	// 0→1 costs (1+5)/2 = 3; 1→2 costs (5+5)/2 = 5.
	fmt.Printf("cost[1]=%v cost[2]=%v\n", res.CostAt(1), res.CostAt(2))
	// Output: cost[1]=3 cost[2]=8
}

// ExampleRecalculate_destinations treats the inputs as targets to reach
// rather than sources to flee, so one-way records are honored in their
// real direction.
func ExampleRecalculate_destinations() {
	// One-way lanes: 0→1→2. With 2 as the destination, every point knows
	// which way to drive.
	g := core.NewGraph()
	for id := 0; id < 3; id++ {
		g.AddPoint(id, core.DefaultTerrain)
	}
	g.Connect(0, 1, 1, false)
	g.Connect(1, 2, 1, false)

	res, _ := dijkstra.Recalculate(g, []int{2}, dijkstra.WithDestinations())
	fmt.Printf("from 0: cost=%v next=%d\n", res.CostAt(0), res.DirectionAt(0))
	// Output: from 0: cost=2 next=1
}

// ExampleRecalculate_maximumCost caps exploration: points whose cheapest
// cost would exceed the cap never settle and read back as unreachable.
func ExampleRecalculate_maximumCost() {
	g := core.NewGraph()
	for id := 0; id < 4; id++ {
		g.AddPoint(id, core.DefaultTerrain)
	}
	for id := 1; id < 4; id++ {
		g.Connect(id-1, id, 1, true)
	}

	res, _ := dijkstra.Recalculate(g, []int{0}, dijkstra.WithMaximumCost(2))
	fmt.Printf("settled=%d far=%v\n", res.Len(), math.IsInf(res.CostAt(3), 1))
	// Output: settled=3 far=true
}

// ExampleResult_PathFrom reconstructs the step sequence from a point to
// the nearest input by following direction links.
func ExampleResult_PathFrom() {
	g := core.NewGraph()
	for id := 0; id < 4; id++ {
		g.AddPoint(id, core.DefaultTerrain)
	}
	for id := 1; id < 4; id++ {
		g.Connect(id-1, id, 1, true)
	}

	res, _ := dijkstra.Recalculate(g, []int{0})
	fmt.Println(res.PathFrom(3))
	// Output: [2 1 0]
}
