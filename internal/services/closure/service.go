// Package closure orchestrates the daily cash closure lifecycle.
package closure

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ErikGranda885/restocaja/internal/common"
	"github.com/ErikGranda885/restocaja/internal/interfaces"
	"github.com/ErikGranda885/restocaja/internal/models"
)

// Compile-time interface check
var _ interfaces.ClosureService = (*Service)(nil)

// Service implements ClosureService. It holds no state of its own beyond
// the per-date locks; every record lives in the closure store, and this
// service is the only component that mutates closure status.
type Service struct {
	storage    interfaces.StorageManager
	aggregator interfaces.AggregatorService
	notifier   interfaces.Notifier
	detector   *Detector
	logger     *common.Logger
	locks      dateLocks

	// today is swappable so tests can pin the calendar day.
	today func() models.Date
}

// NewService creates a new closure lifecycle service. A nil notifier falls
// back to logging.
func NewService(storage interfaces.StorageManager, aggregator interfaces.AggregatorService, notifier interfaces.Notifier, logger *common.Logger) *Service {
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}
	return &Service{
		storage:    storage,
		aggregator: aggregator,
		notifier:   notifier,
		detector:   NewDetector(storage.ClosureStore()),
		logger:     logger,
		today:      models.Today,
	}
}

// EnsureToday guarantees a closure record exists for today. Missing: create
// one from current totals. Open: refresh its totals (they legitimately move
// intra-day as transactions post), writing only when something changed so
// repeated calls with an unchanged ledger return identical records. Closed:
// return it untouched.
func (s *Service) EnsureToday(ctx context.Context) (*models.ClosureRecord, error) {
	today := s.today()
	unlock := s.locks.lock(today)
	defer unlock()

	cls, err := s.detector.Classify(ctx, today)
	if err != nil {
		return nil, err
	}

	store := s.storage.ClosureStore()

	if !cls.RequiresCreation && !cls.HasOpenToday {
		// Today is already settled.
		return store.Get(ctx, today)
	}

	summary, err := s.aggregator.Summarize(ctx, today)
	if err != nil {
		return nil, err
	}

	record := models.NewClosureFromSummary(summary, time.Now())
	event := interfaces.ClosureEventCreated

	if cls.HasOpenToday {
		existing, err := store.Get(ctx, today)
		if err != nil {
			return nil, fmt.Errorf("failed to load today's open closure: %w", err)
		}
		if sameTotals(existing, record) {
			return existing, nil
		}
		record.CreatedAt = existing.CreatedAt
		event = interfaces.ClosureEventRefreshed
	}

	if err := store.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist today's closure: %w", err)
	}

	s.logger.Info().
		Str("date", today.String()).
		Str("event", event).
		Str("variance", record.Variance.String()).
		Msg("Closure ensured")
	s.notifier.ClosureChanged(ctx, record, event)

	return record, nil
}

// List returns records matching the filter, newest first. Filtering happens
// after retrieval and never mutates stored status.
func (s *Service) List(ctx context.Context, filter models.ClosureFilter) ([]*models.ClosureRecord, error) {
	records, err := s.storage.ClosureStore().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list closures: %w", err)
	}

	today := s.today()
	filtered := []*models.ClosureRecord{}
	for _, r := range records {
		if filter.Matches(r, today) {
			filtered = append(filtered, r)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[j].Date.Before(filtered[i].Date)
	})

	return filtered, nil
}

// GetByDate returns the record for a date or models.ErrNotFound.
func (s *Service) GetByDate(ctx context.Context, date models.Date) (*models.ClosureRecord, error) {
	return s.storage.ClosureStore().Get(ctx, date)
}

// Close transitions a pending record to closed, stamping who and when. The
// variance closed is the variance last computed; callers refresh via
// EnsureToday immediately before closing to avoid sealing stale totals.
func (s *Service) Close(ctx context.Context, date models.Date, closedBy string) (*models.ClosureRecord, error) {
	unlock := s.locks.lock(date)
	defer unlock()

	store := s.storage.ClosureStore()

	record, err := store.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	if record.IsClosed() {
		return nil, fmt.Errorf("closure for %s is already closed: %w", date, models.ErrInvalidTransition)
	}

	now := time.Now()
	record.Status = models.ClosureStatusClosed
	record.ClosedBy = closedBy
	record.ClosedAt = &now
	record.Recompute()

	if err := store.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist closed record: %w", err)
	}

	s.logger.Info().
		Str("date", date.String()).
		Str("closed_by", closedBy).
		Str("variance", record.Variance.String()).
		Msg("Closure finalized")
	s.notifier.ClosureChanged(ctx, record, interfaces.ClosureEventClosed)

	return record, nil
}

// Delete removes a pending record. A closed record is an audit artifact and
// can never be deleted.
func (s *Service) Delete(ctx context.Context, date models.Date) error {
	unlock := s.locks.lock(date)
	defer unlock()

	store := s.storage.ClosureStore()

	record, err := store.Get(ctx, date)
	if err != nil {
		return err
	}
	if record.IsClosed() {
		return fmt.Errorf("closure for %s is closed and cannot be deleted: %w", date, models.ErrInvalidTransition)
	}

	if err := store.Delete(ctx, date); err != nil {
		return fmt.Errorf("failed to delete closure: %w", err)
	}

	s.logger.Info().Str("date", date.String()).Msg("Closure deleted")
	s.notifier.ClosureChanged(ctx, record, interfaces.ClosureEventDeleted)

	return nil
}

// sameTotals reports whether two records carry identical source totals.
// Derived fields are functions of the totals, so comparing the four inputs
// is sufficient.
func sameTotals(a, b *models.ClosureRecord) bool {
	return a.TotalSales.Equal(b.TotalSales) &&
		a.TotalExpenses.Equal(b.TotalExpenses) &&
		a.TotalPurchasesPaid.Equal(b.TotalPurchasesPaid) &&
		a.TotalDeposited.Equal(b.TotalDeposited)
}
