package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// ChangeTracker reports SQLite's data_version from a connection that never
// writes. The value moves whenever any other connection commits, including
// connections held by other processes sharing the database file.
type ChangeTracker struct {
	mu   sync.Mutex
	conn *sql.Conn
}

// NewChangeTracker pins one connection from db for data_version reads.
// It must not be used with an in-memory database limited to one connection.
func NewChangeTracker(ctx context.Context, db *sql.DB) (*ChangeTracker, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("pinning change tracker connection: %w", err)
	}
	return &ChangeTracker{conn: conn}, nil
}

// DataVersion returns the current data_version of the pinned connection.
func (t *ChangeTracker) DataVersion(ctx context.Context) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var v int64
	if err := t.conn.QueryRowContext(ctx, "PRAGMA data_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading data_version: %w", err)
	}
	return v, nil
}

// Close releases the pinned connection back to the pool.
func (t *ChangeTracker) Close() error {
	return t.conn.Close()
}
