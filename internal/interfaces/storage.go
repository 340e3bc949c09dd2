// Package interfaces defines contracts between the engine's layers.
package interfaces

import (
	"context"

	"github.com/ErikGranda885/restocaja/internal/models"
)

// ClosureStore is the durable collection of closure records, at most one per
// calendar date. It is the only component allowed to write ClosureRecords,
// and a successful write must be visible to subsequent reads for that date.
type ClosureStore interface {
	// Get returns the record for a date, or models.ErrNotFound.
	// If the backend somehow holds more than one record for the date it
	// returns models.ErrDataCorruption rather than picking one.
	Get(ctx context.Context, date models.Date) (*models.ClosureRecord, error)

	// Upsert creates or replaces the record keyed by its date. It never
	// produces a duplicate: two concurrent upserts for the same date leave
	// exactly one stored record.
	Upsert(ctx context.Context, record *models.ClosureRecord) error

	// List returns a consistent snapshot of all records.
	List(ctx context.Context) ([]*models.ClosureRecord, error)

	// Delete removes the record for a date, or returns models.ErrNotFound.
	Delete(ctx context.Context, date models.Date) error
}

// LedgerStore holds the raw transactions the aggregator reads. Entries are
// append-only.
type LedgerStore interface {
	// Append records a new entry. The store assigns RecordedAt if zero.
	Append(ctx context.Context, entry *models.LedgerEntry) error

	// ListByDate returns all entries whose calendar date equals date, in
	// recording order. An empty day yields an empty slice, not an error.
	ListByDate(ctx context.Context, date models.Date) ([]models.LedgerEntry, error)
}

// StorageManager provides access to all stores and owns their lifecycle.
type StorageManager interface {
	ClosureStore() ClosureStore
	LedgerStore() LedgerStore
	Close() error
}
