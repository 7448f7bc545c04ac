// Package dijkstra defines configuration options, terrain weighting and
// sentinel errors for the multi-source Dijkstra map recalculation.
//
// Recalculate runs one relaxation over a core.Graph from a set of origin
// points and produces a Result: per reachable point, the total cost and the
// next point to step to in order to approach the nearest origin. One
// recalculation amortizes across any number of queries on the Result.
//
// Complexity:
//
//   - Time:  O((V + E) log V) where V = |points|, E = |connections|.
//   - Each point is settled at most once (V pops).
//   - Each relaxation may push one frontier entry (up to E pushes).
//   - Each heap operation costs O(log V) under lazy decrease-key.
//   - Space: O(V + E)
//   - O(V) to store cost and predecessor maps.
//   - O(E) worst-case frontier entries.
//
// Options:
//
//   - InputIsDestination: treat the inputs as destinations; relaxation runs
//     over reversed connections so directions follow real edge directions
//     toward the nearest destination. Default false.
//   - MaximumCost: inclusive cap on explored costs. Default +Inf.
//   - InitialCosts: positional seed costs for the inputs; missing entries
//     default to 0, extras are ignored.
//   - TerrainWeights: terrain tag → cost multiplier table for this run.
//   - TerminationPoints: stop once all listed points are settled.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph: returned if you pass a nil *core.Graph to Recalculate.
//   - ErrNoOrigins: returned if the origin list is empty.
//   - ErrPointNotFound: returned if an origin or termination point is not
//     stored in the graph.
//   - ErrBadMaximumCost: returned if MaximumCost is negative or NaN.
//   - ErrBadInitialCost: returned if an initial cost is NaN.
//   - ErrBadTerrainWeight: returned if a terrain multiplier is negative or NaN.
//
// Example usage:
//
//	res, err := dijkstra.Recalculate(g, []int{target},
//	    dijkstra.WithDestinations(),
//	    dijkstra.WithTerrainWeights(map[int]float64{swamp: 3}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("next step:", res.DirectionAt(unit))
package dijkstra

import (
	"errors"
	"math"

	"github.com/skison/dijkstramap/core"
)

// Sentinel errors returned by Recalculate.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed to Recalculate.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrNoOrigins indicates an empty origin list.
	ErrNoOrigins = errors.New("dijkstra: at least one origin point is required")

	// ErrPointNotFound indicates an origin or termination point absent from the graph.
	ErrPointNotFound = errors.New("dijkstra: point not found in graph")

	// ErrBadMaximumCost indicates a negative or NaN MaximumCost.
	ErrBadMaximumCost = errors.New("dijkstra: MaximumCost must be non-negative")

	// ErrBadInitialCost indicates a NaN entry in InitialCosts.
	ErrBadInitialCost = errors.New("dijkstra: initial costs must not be NaN")

	// ErrBadTerrainWeight indicates a negative or NaN terrain multiplier.
	ErrBadTerrainWeight = errors.New("dijkstra: terrain weights must be non-negative")
)

// NoDirection is the predecessor sentinel: returned for origins (nothing
// closer to step to) and for points absent from the result.
const NoDirection = -1

// TerrainWeights maps a terrain tag to its cost multiplier for one
// recalculation. Tags absent from the map are impassable (+Inf), with one
// exception: the default tag core.DefaultTerrain resolves to 1.0 unless
// the map overrides it explicitly.
type TerrainWeights map[int]float64

// Multiplier resolves one tag to its multiplier under the rules above.
// Complexity: O(1)
func (t TerrainWeights) Multiplier(tag int) float64 {
	if w, ok := t[tag]; ok {
		return w
	}
	if tag == core.DefaultTerrain {
		return 1
	}

	return math.Inf(1)
}

// EdgeMultiplier combines two endpoint tags into the effective multiplier
// of the connection between them: the arithmetic mean of both multipliers.
// A single infinite endpoint makes the connection impassable for the run,
// regardless of the other endpoint.
// Complexity: O(1)
func (t TerrainWeights) EdgeMultiplier(tagA, tagB int) float64 {
	return (t.Multiplier(tagA) + t.Multiplier(tagB)) / 2
}

// Options configures one recalculation. The zero value is not the default;
// use DefaultOptions or functional options. The mapstructure tags let hosts
// decode Options from loosely typed maps (unrecognized keys are ignored).
type Options struct {
	// InputIsDestination treats the inputs as destinations: relaxation runs
	// over reversed connections and directions point toward the nearest
	// destination along real edge directions.
	InputIsDestination bool `mapstructure:"input_is_destination"`

	// MaximumCost is the inclusive cap on explored costs. Candidates above
	// it are not enqueued and the run stops once the frontier minimum
	// exceeds it.
	MaximumCost float64 `mapstructure:"maximum_cost"`

	// InitialCosts seeds the inputs positionally; missing entries are 0.
	InitialCosts []float64 `mapstructure:"initial_costs"`

	// TerrainWeights is the tag → multiplier table for this run.
	TerrainWeights TerrainWeights `mapstructure:"terrain_weights"`

	// TerminationPoints stops the run early once all are settled.
	TerminationPoints []int `mapstructure:"termination_points"`
}

// Option represents a functional option for configuring Recalculate.
type Option func(*Options)

// WithDestinations treats the input points as destinations instead of
// origins. Costs then mean "cost to reach the nearest destination" and
// directions follow real edge directions toward it.
func WithDestinations() Option {
	return func(o *Options) {
		o.InputIsDestination = true
	}
}

// WithMaximumCost caps exploration at the given inclusive cost.
// Must be non-negative; invalid values cause ErrBadMaximumCost at
// Recalculate time. Default is +Inf (no cap).
func WithMaximumCost(limit float64) Option {
	return func(o *Options) {
		o.MaximumCost = limit
	}
}

// WithInitialCosts seeds the input points positionally with the given
// starting costs instead of 0, supporting unequally weighted origins.
func WithInitialCosts(costs ...float64) Option {
	return func(o *Options) {
		o.InitialCosts = costs
	}
}

// WithTerrainWeights installs the tag → multiplier table for this run.
// The map is read during the call only and not retained.
func WithTerrainWeights(weights map[int]float64) Option {
	return func(o *Options) {
		o.TerrainWeights = weights
	}
}

// WithTerminationPoints stops the run as soon as every listed point is
// settled; unreachable ones are covered by frontier exhaustion.
func WithTerminationPoints(ids ...int) Option {
	return func(o *Options) {
		o.TerminationPoints = ids
	}
}

// WithOptions replaces the assembled Options wholesale. Intended for hosts
// that decode a full Options value from configuration or request payloads
// rather than composing individual options.
func WithOptions(o Options) Option {
	return func(dst *Options) {
		*dst = o
	}
}

// DefaultOptions returns the Options every recalculation starts from:
//
//   - InputIsDestination: false (inputs are origins).
//   - MaximumCost:        +Inf (no cap).
//   - InitialCosts:       none (all inputs seed at 0).
//   - TerrainWeights:     none (default terrain 1.0, others impassable).
//   - TerminationPoints:  none (run to frontier exhaustion).
func DefaultOptions() Options {
	return Options{
		MaximumCost: math.Inf(1),
	}
}
