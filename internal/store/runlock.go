package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"
)

// ErrRunInProgress is returned by AcquireRunLock when another process holds
// the lock for the same run date. The caller should report the trigger as
// failed rather than proceeding — overlapping runs would race the
// window-based campaigns, which have no unique-constraint backstop.
var ErrRunInProgress = errors.New("store: a lifecycle run is already in progress for this date")

// RunLock is a held Postgres advisory lock. Advisory locks are scoped to the
// database session, so the lock pins one connection from the pool until
// Release is called.
type RunLock struct {
	conn *sql.Conn
	key  int64
}

// AcquireRunLock takes the advisory lock for the given run date. Keying by
// date (not a single global key) means a run that straddles midnight does not
// block the next day's trigger.
func (s *Store) AcquireRunLock(ctx context.Context, day time.Time) (*RunLock, error) {
	conn, err := s.pool.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("AcquireRunLock: acquire connection: %w", err)
	}

	key := runLockKey(day)
	var locked bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", key).Scan(&locked); err != nil {
		conn.Close()
		return nil, fmt.Errorf("AcquireRunLock: try lock: %w", err)
	}
	if !locked {
		conn.Close()
		return nil, ErrRunInProgress
	}
	return &RunLock{conn: conn, key: key}, nil
}

// Release unlocks and returns the pinned connection to the pool. Safe to call
// with a context different from the acquiring one (e.g. during shutdown).
func (l *RunLock) Release(ctx context.Context) error {
	defer l.conn.Close()
	if _, err := l.conn.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", l.key); err != nil {
		return fmt.Errorf("RunLock.Release: unlock: %w", err)
	}
	return nil
}

// runLockKey hashes the run date into the int64 keyspace advisory locks use.
func runLockKey(day time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "lifecycle-emails:%s", day.UTC().Format("2006-01-02"))
	return int64(h.Sum64())
}
