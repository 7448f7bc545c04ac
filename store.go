package dijkstramap

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skison/dijkstramap/core"
)

// GraphInfo summarizes one persisted snapshot.
type GraphInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Points      int       `json:"points"`
	Connections int       `json:"connections"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store persists graphs as named snapshots. Implementations must be safe
// for concurrent use; the reference implementation lives in the postgres
// subpackage.
type Store interface {
	// CreateSchema provisions the backing tables; safe to call repeatedly.
	CreateSchema(ctx context.Context) error

	// DropSchema removes the backing tables and all snapshots.
	DropSchema(ctx context.Context) error

	// SaveGraph writes a snapshot of g under the given name and returns
	// its generated id.
	SaveGraph(ctx context.Context, name string, g *core.Graph) (uuid.UUID, error)

	// LoadGraph rebuilds the graph stored under id, including terrain
	// tags, disabled flags and directed connection records.
	LoadGraph(ctx context.Context, id uuid.UUID) (*core.Graph, error)

	// ListGraphs returns summaries of all snapshots, newest first.
	ListGraphs(ctx context.Context) ([]GraphInfo, error)

	// DeleteGraph removes the snapshot and its rows.
	DeleteGraph(ctx context.Context, id uuid.UUID) error
}
