package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface for the activity journal. Concrete
// drivers implement it and expose sub-repositories so callers cannot nest
// transactions by accident.
type Store interface {
	Journal() Journal

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Journal interface {
	// AppendEntry inserts an entry. ID and CreatedAt are provided by the caller.
	AppendEntry(ctx context.Context, e domain.JournalEntry) error

	// GetEntry returns a single entry or ErrNotFound.
	GetEntry(ctx context.Context, id string) (domain.JournalEntry, error)

	// ListRecentEntries returns up to limit entries, newest first. An empty
	// kind matches every kind.
	ListRecentEntries(ctx context.Context, kind domain.JournalKind, limit int) ([]domain.JournalEntry, error)

	// CountEntries returns the number of stored entries.
	CountEntries(ctx context.Context) (int, error)

	// DeleteEntriesBefore removes entries created before cutoff and reports how many went.
	DeleteEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
