package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skison/dijkstramap"
	"github.com/skison/dijkstramap/core"
)

// SaveGraph writes one snapshot of g in a single transaction and returns
// its generated id. Terrain tags, disabled flags and every directed
// connection record are captured; the in-memory id counter is not, so a
// loaded graph allocates fresh ids past its highest stored one.
func (s *Store) SaveGraph(ctx context.Context, name string, g *core.Graph) (uuid.UUID, error) {
	if g == nil {
		return uuid.Nil, core.ErrNilGraph
	}

	id := uuid.New()
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx,
		`INSERT INTO dm_snapshots (id, name) VALUES ($1, $2)`, id, name,
	); err != nil {
		return uuid.Nil, fmt.Errorf("postgres: insert snapshot: %w", err)
	}

	for _, p := range g.Points() {
		if _, err = tx.Exec(ctx,
			`INSERT INTO dm_points (snapshot_id, point_id, terrain, disabled) VALUES ($1, $2, $3, $4)`,
			id, p.ID, p.Terrain, p.Disabled,
		); err != nil {
			return uuid.Nil, fmt.Errorf("postgres: insert point %d: %w", p.ID, err)
		}
	}

	for _, c := range g.Connections() {
		if _, err = tx.Exec(ctx,
			`INSERT INTO dm_connections (snapshot_id, source, target, weight) VALUES ($1, $2, $3, $4)`,
			id, c.Source, c.Target, c.Weight,
		); err != nil {
			return uuid.Nil, fmt.Errorf("postgres: insert connection %d->%d: %w", c.Source, c.Target, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("postgres: commit: %w", err)
	}

	return id, nil
}

// LoadGraph rebuilds the graph stored under id.
// Returns ErrSnapshotNotFound if the id is unknown.
func (s *Store) LoadGraph(ctx context.Context, id uuid.UUID) (*core.Graph, error) {
	var name string
	err := s.db.QueryRow(ctx,
		`SELECT name FROM dm_snapshots WHERE id = $1`, id,
	).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
		}
		return nil, fmt.Errorf("postgres: get snapshot: %w", err)
	}

	g := core.NewGraph()
	if err = s.loadPoints(ctx, id, g); err != nil {
		return nil, err
	}
	if err = s.loadConnections(ctx, id, g); err != nil {
		return nil, err
	}

	return g, nil
}

// loadPoints restores point rows including terrain and disabled state.
func (s *Store) loadPoints(ctx context.Context, id uuid.UUID, g *core.Graph) error {
	rows, err := s.db.Query(ctx,
		`SELECT point_id, terrain, disabled FROM dm_points WHERE snapshot_id = $1 ORDER BY point_id`, id)
	if err != nil {
		return fmt.Errorf("postgres: query points: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pid, terrain int
			disabled     bool
		)
		if err = rows.Scan(&pid, &terrain, &disabled); err != nil {
			return fmt.Errorf("postgres: scan point: %w", err)
		}
		if err = g.AddPoint(pid, terrain); err != nil {
			return fmt.Errorf("postgres: restore point %d: %w", pid, err)
		}
		if disabled {
			_ = g.DisablePoint(pid) // the point was just added
		}
	}

	return rows.Err()
}

// loadConnections restores each directed record individually, so one-way
// connections survive the round trip.
func (s *Store) loadConnections(ctx context.Context, id uuid.UUID, g *core.Graph) error {
	rows, err := s.db.Query(ctx,
		`SELECT source, target, weight FROM dm_connections WHERE snapshot_id = $1 ORDER BY source, target`, id)
	if err != nil {
		return fmt.Errorf("postgres: query connections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			source, target int
			weight         float64
		)
		if err = rows.Scan(&source, &target, &weight); err != nil {
			return fmt.Errorf("postgres: scan connection: %w", err)
		}
		if err = g.Connect(source, target, weight, false); err != nil {
			return fmt.Errorf("postgres: restore connection %d->%d: %w", source, target, err)
		}
	}

	return rows.Err()
}

// ListGraphs returns summaries of all snapshots, newest first.
// Returns an empty slice (not nil) if none are stored.
func (s *Store) ListGraphs(ctx context.Context) ([]dijkstramap.GraphInfo, error) {
	rows, err := s.db.Query(ctx, `
		SELECT s.id, s.name, s.created_at,
		       (SELECT COUNT(*) FROM dm_points p WHERE p.snapshot_id = s.id),
		       (SELECT COUNT(*) FROM dm_connections c WHERE c.snapshot_id = s.id)
		FROM dm_snapshots s
		ORDER BY s.created_at DESC, s.id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: query snapshots: %w", err)
	}
	defer rows.Close()

	infos := []dijkstramap.GraphInfo{}
	for rows.Next() {
		var info dijkstramap.GraphInfo
		if err = rows.Scan(&info.ID, &info.Name, &info.CreatedAt, &info.Points, &info.Connections); err != nil {
			return nil, fmt.Errorf("postgres: scan snapshot: %w", err)
		}
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows snapshots: %w", err)
	}

	return infos, nil
}

// DeleteGraph removes the snapshot; point and connection rows cascade.
// Returns ErrSnapshotNotFound if the id is unknown.
func (s *Store) DeleteGraph(ctx context.Context, id uuid.UUID) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM dm_snapshots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete snapshot: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}

	return nil
}
