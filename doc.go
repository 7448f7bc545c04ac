// Package dijkstramap turns points and weighted connections into reusable
// cost fields: recalculate once from any number of origins, then answer
// movement queries in O(1) until the map changes.
//
// 🚀 What is dijkstramap?
//
//	A pathfinding engine built for many agents sharing few goals:
//		• Point & connection storage with terrain tags and per-point toggling
//		• Multi-source Dijkstra recalculation: one frontier, every origin at once
//		• Terrain-weighted costs, inclusive cost caps, early termination
//		• O(1) queries: cost, next step, cost ranges, full path reconstruction
//		• Square & hexagonal grid builders for tile worlds
//		• Postgres snapshots and an HTTP service for remote hosts
//
// ✨ Why choose dijkstramap?
//
//   - One recalculation serves thousands of queries – ideal for flow fields,
//     influence zones and crowd movement
//   - Deterministic – identical inputs always produce identical fields
//   - Explicit errors – no panics on bad input, sentinel errors throughout
//   - Single-owner design – no hidden locks; embed it your way
//
// Under the hood, everything is organized under subpackages:
//
//	core/     — point & connection stores: terrain, toggling, adjacency
//	dijkstra/ — the recalculation engine, options and result queries
//	grid/     — square and hexagonal grid stampers
//	postgres/ — snapshot persistence on pgx
//	server/   — HTTP service exposing named maps over fiber
//
// Quick ASCII example:
//
//	    0───1───2
//	    │   │   │
//	    3───4───5
//
//	recalculating from {0} assigns each point its cost to reach 0 and the
//	neighbor to step to: 5 costs 3 and steps to 2.
//
// The root package bundles it all into Map, a one-object façade mirroring
// the procedural API most hosts want. Dive into the examples/ directory
// for runnable demos of fortress defense fields and caravan routing.
package dijkstramap
