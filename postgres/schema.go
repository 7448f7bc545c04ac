package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS dm_snapshots (
    id         UUID PRIMARY KEY,
    name       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS dm_points (
    snapshot_id UUID NOT NULL REFERENCES dm_snapshots(id) ON DELETE CASCADE,
    point_id    BIGINT NOT NULL,
    terrain     BIGINT NOT NULL,
    disabled    BOOLEAN NOT NULL DEFAULT FALSE,
    PRIMARY KEY (snapshot_id, point_id)
);

CREATE TABLE IF NOT EXISTS dm_connections (
    snapshot_id UUID NOT NULL REFERENCES dm_snapshots(id) ON DELETE CASCADE,
    source      BIGINT NOT NULL,
    target      BIGINT NOT NULL,
    weight      DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (snapshot_id, source, target)
);

CREATE INDEX IF NOT EXISTS idx_dm_points_snapshot      ON dm_points(snapshot_id);
CREATE INDEX IF NOT EXISTS idx_dm_connections_snapshot ON dm_connections(snapshot_id);
`

// CreateSchema creates the snapshot tables if they don't exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the snapshot tables and everything stored in them.
func (s *Store) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS dm_connections, dm_points, dm_snapshots CASCADE;`)
	return err
}
