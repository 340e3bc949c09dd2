package interfaces

import (
	"context"

	"github.com/ErikGranda885/restocaja/internal/models"
)

// AggregatorService sums a day's raw transactions into totals. Read-only:
// it never writes and never substitutes zeros for an unreachable source.
type AggregatorService interface {
	// Summarize returns the day's totals. A day with no transactions yields
	// zero totals; an unreachable source yields models.ErrDataUnavailable.
	Summarize(ctx context.Context, date models.Date) (models.DaySummary, error)

	// Movements returns the day's raw entries grouped per kind, bypassing
	// reconciliation.
	Movements(ctx context.Context, date models.Date) (*models.DayMovements, error)
}

// ClosureService orchestrates the closure lifecycle. It is the only
// component permitted to mutate closure status.
type ClosureService interface {
	// EnsureToday guarantees a closure record exists for today, creating or
	// refreshing it from current totals. Idempotent.
	EnsureToday(ctx context.Context) (*models.ClosureRecord, error)

	// List returns records matching the filter, newest first.
	List(ctx context.Context, filter models.ClosureFilter) ([]*models.ClosureRecord, error)

	// GetByDate returns a single record or models.ErrNotFound.
	GetByDate(ctx context.Context, date models.Date) (*models.ClosureRecord, error)

	// Close transitions pending → closed, stamping closedBy/closedAt.
	// Returns models.ErrInvalidTransition if already closed, or
	// models.ErrNotFound if no record exists.
	Close(ctx context.Context, date models.Date, closedBy string) (*models.ClosureRecord, error)

	// Delete removes a pending record. Deleting a closed record is an audit
	// violation and returns models.ErrInvalidTransition.
	Delete(ctx context.Context, date models.Date) error
}

// Closure change events passed to the Notifier.
const (
	ClosureEventCreated   = "created"
	ClosureEventRefreshed = "refreshed"
	ClosureEventClosed    = "closed"
	ClosureEventDeleted   = "deleted"
)

// Notifier is invoked after every successful closure mutation. The transport
// (push vs poll) is the collaborating layer's concern.
type Notifier interface {
	ClosureChanged(ctx context.Context, record *models.ClosureRecord, event string)
}
