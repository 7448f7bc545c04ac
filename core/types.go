// Package core defines the Graph storage underlying a Dijkstra map:
// a set of points keyed by non-negative integer ids, each carrying a
// terrain tag and an enabled flag, plus directed weighted connections
// between them.
//
// The graph keeps mirrored forward and reverse adjacency so neighbor
// iteration is O(degree) in either traversal direction. It holds no
// internal locks: one instance belongs to one logical owner at a time,
// and independent deep copies (Clone, CopyFrom) may be used from
// separate goroutines freely.
//
// Errors:
//
//	ErrNilGraph       - a nil *Graph was passed where one is required.
//	ErrNegativeID     - a point id below zero was supplied.
//	ErrDuplicatePoint - AddPoint with an id already present.
//	ErrPointNotFound  - an operation referenced an id not in the store.
//	ErrBadWeight      - a negative or NaN connection weight.
package core

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrNilGraph indicates a nil *Graph argument.
	ErrNilGraph = errors.New("core: graph is nil")

	// ErrNegativeID indicates a point id below zero.
	ErrNegativeID = errors.New("core: point id must be non-negative")

	// ErrDuplicatePoint indicates AddPoint was called with an id already present.
	ErrDuplicatePoint = errors.New("core: point id already present")

	// ErrPointNotFound indicates an operation referenced a non-existent point.
	ErrPointNotFound = errors.New("core: point not found")

	// ErrBadWeight indicates a negative or NaN connection weight.
	ErrBadWeight = errors.New("core: connection weight must be non-negative")
)

// DefaultTerrain is the terrain tag assigned to points created without an
// explicit tag. Recalculations resolve it to multiplier 1.0 unless the
// caller overrides it.
const DefaultTerrain = -1

// Direction selects which way connections are traversed during neighbor
// iteration: along stored records (Forward) or against them (Backward).
type Direction int

const (
	// Forward iterates connections out of a point: records (id, target).
	Forward Direction = iota

	// Backward iterates connections into a point: records (source, id).
	Backward
)

// Point is a snapshot of one stored point.
type Point struct {
	ID       int
	Terrain  int
	Disabled bool
}

// Connection is a snapshot of one directed weighted record.
type Connection struct {
	Source int
	Target int
	Weight float64
}

// Arc is one step of neighbor iteration: the endpoint reached from the
// queried point in the requested direction, and the base weight of the
// underlying record.
type Arc struct {
	To     int
	Weight float64
}

// Graph is the in-memory point and connection store.
//
// points maps id to the mutable point record. out and in are mirrored
// adjacency maps: out[s][t] and in[t][s] always hold the same weight for
// a record s→t. nextID tracks (highest id ever added)+1 and never
// decreases, so removed ids are not reused.
type Graph struct {
	points map[int]*Point
	out    map[int]map[int]float64
	in     map[int]map[int]float64
	nextID int
}

// NewGraph creates an empty Graph.
// Complexity: O(1)
func NewGraph() *Graph {
	return &Graph{
		points: make(map[int]*Point),
		out:    make(map[int]map[int]float64),
		in:     make(map[int]map[int]float64),
	}
}
