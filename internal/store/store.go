// Package store wraps db.Querier with the write operations that carry the
// batch job's correctness guarantees: the atomic send-log claim and the
// per-run advisory lock.
//
// Single-query reads (GetEmailHistory, the candidate lists) should be called
// directly on db.Querier in the worker — there is no value in proxying them
// through this package.
//
// Dependency rule: store imports db only. It never imports worker, sequence,
// api, or email.
package store

import (
	"database/sql"

	"github.com/vowly/vowly-backend/internal/db"
)

// Store holds the raw connection pool (needed for the session-scoped advisory
// lock) and a db.Querier for everything else.
type Store struct {
	pool *sql.DB
	q    db.Querier
}

// New creates a Store from a live connection pool. The pool must already be
// open and verified (e.g. via PingContext) before calling New.
func New(pool *sql.DB, q db.Querier) *Store {
	return &Store{pool: pool, q: q}
}

// Q exposes the underlying Querier so callers can run single-query reads
// without going through a store method.
func (s *Store) Q() db.Querier {
	return s.q
}
