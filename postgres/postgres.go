// Package postgres implements dijkstramap.Store on PostgreSQL via pgx.
//
// Graphs are persisted as named snapshots: one row in dm_snapshots plus
// the point and directed connection rows belonging to it. Snapshots are
// immutable; saving the same name again creates a new snapshot with a
// fresh id.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skison/dijkstramap"
)

// ErrSnapshotNotFound indicates the requested snapshot id is not stored.
var ErrSnapshotNotFound = errors.New("postgres: snapshot not found")

// Store implements dijkstramap.Store using PostgreSQL via pgx.
type Store struct {
	db *pgxpool.Pool
}

var _ dijkstramap.Store = (*Store)(nil)

// New creates a Store backed by the given pgx connection pool.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}
