package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skison/dijkstramap/core"
)

func buildSample(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	require.NoError(t, g.AddPoint(0, core.DefaultTerrain))
	require.NoError(t, g.AddPoint(1, 2))
	require.NoError(t, g.AddPoint(5, 3))
	require.NoError(t, g.DisablePoint(5))
	require.NoError(t, g.Connect(0, 1, 1.5, true))
	require.NoError(t, g.Connect(1, 5, 4, false))

	return g
}

// TestClear empties the store and resets the id counter.
func TestClear(t *testing.T) {
	g := buildSample(t)
	g.Clear()

	require.Equal(t, 0, g.PointCount())
	require.Equal(t, 0, g.ConnectionCount())
	require.Equal(t, 0, g.AvailablePointID())

	// The cleared graph is fully usable again.
	require.NoError(t, g.AddPoint(0, core.DefaultTerrain))
	require.Equal(t, 1, g.AvailablePointID())
}

// TestCopyFrom reproduces points, terrain, enabled state and records.
func TestCopyFrom(t *testing.T) {
	src := buildSample(t)

	dst := core.NewGraph()
	require.NoError(t, dst.AddPoint(99, core.DefaultTerrain)) // overwritten by the copy
	require.NoError(t, dst.CopyFrom(src))

	require.False(t, dst.HasPoint(99))
	require.Equal(t, src.PointIDs(), dst.PointIDs())
	require.Equal(t, src.Points(), dst.Points())
	require.Equal(t, src.Connections(), dst.Connections())
	require.Equal(t, src.AvailablePointID(), dst.AvailablePointID())

	disabled, err := dst.IsDisabled(5)
	require.NoError(t, err)
	require.True(t, disabled)
}

// TestCopyFrom_NilSource fails with ErrNilGraph and keeps the receiver.
func TestCopyFrom_NilSource(t *testing.T) {
	g := buildSample(t)
	require.ErrorIs(t, g.CopyFrom(nil), core.ErrNilGraph)
	require.Equal(t, 3, g.PointCount())
}

// TestCopyFrom_Isolation verifies the copies share no mutable state.
func TestCopyFrom_Isolation(t *testing.T) {
	src := buildSample(t)
	dst := core.NewGraph()
	require.NoError(t, dst.CopyFrom(src))

	require.NoError(t, dst.RemovePoint(1))
	require.NoError(t, dst.SetTerrain(0, 7))

	// The source is untouched.
	require.True(t, src.HasPoint(1))
	require.True(t, src.HasConnection(0, 1))
	terrain, err := src.Terrain(0)
	require.NoError(t, err)
	require.Equal(t, core.DefaultTerrain, terrain)

	// And mutating the source does not reach the copy.
	require.NoError(t, src.Connect(0, 5, 9, false))
	require.False(t, dst.HasConnection(0, 5))
}

// TestClone is CopyFrom into a fresh graph.
func TestClone(t *testing.T) {
	src := buildSample(t)
	dup := src.Clone()

	require.Equal(t, src.Points(), dup.Points())
	require.Equal(t, src.Connections(), dup.Connections())

	require.NoError(t, dup.Disconnect(0, 1, true))
	require.True(t, src.HasConnection(0, 1))
}
