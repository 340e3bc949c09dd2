// Package ledger provides the transaction aggregation service.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ErikGranda885/restocaja/internal/common"
	"github.com/ErikGranda885/restocaja/internal/interfaces"
	"github.com/ErikGranda885/restocaja/internal/models"
)

// Compile-time interface check
var _ interfaces.AggregatorService = (*Service)(nil)

// Service reads raw transactions and produces day totals. Aggregation is
// read-only; recording entries is a separate concern exposed for the ledger
// endpoints.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new ledger service.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Record validates and appends a new ledger entry.
func (s *Service) Record(ctx context.Context, kind models.LedgerKind, date models.Date, amount decimal.Decimal, concept string) (*models.LedgerEntry, error) {
	if !models.ValidLedgerKind(kind) {
		return nil, fmt.Errorf("invalid ledger kind '%s'", kind)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("ledger amount must be non-negative, got %s", amount)
	}
	if date.IsZero() {
		date = models.Today()
	}

	entry := &models.LedgerEntry{
		ID:         uuid.New().String(),
		Kind:       kind,
		Date:       date,
		Amount:     amount.Round(2),
		Concept:    strings.TrimSpace(concept),
		RecordedAt: time.Now(),
	}

	if err := s.storage.LedgerStore().Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record ledger entry: %w", err)
	}

	s.logger.Info().
		Str("kind", string(entry.Kind)).
		Str("date", entry.Date.String()).
		Str("amount", entry.Amount.String()).
		Msg("Ledger entry recorded")

	return entry, nil
}

// Entries returns the raw entries for a date, optionally narrowed to a kind.
func (s *Service) Entries(ctx context.Context, date models.Date, kind models.LedgerKind) ([]models.LedgerEntry, error) {
	entries, err := s.fetch(ctx, date)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		return entries, nil
	}
	filtered := []models.LedgerEntry{}
	for _, e := range entries {
		if e.Kind == kind {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// Summarize sums the day's transactions per kind. A day with no transactions
// yields zero totals; an unreachable source never silently becomes zeros.
func (s *Service) Summarize(ctx context.Context, date models.Date) (models.DaySummary, error) {
	entries, err := s.fetch(ctx, date)
	if err != nil {
		return models.DaySummary{}, err
	}

	summary := models.DaySummary{
		Date:               date,
		TotalSales:         decimal.Zero,
		TotalExpenses:      decimal.Zero,
		TotalPurchasesPaid: decimal.Zero,
		TotalDeposited:     decimal.Zero,
	}

	for _, e := range entries {
		switch e.Kind {
		case models.LedgerKindSale:
			summary.TotalSales = summary.TotalSales.Add(e.Amount)
		case models.LedgerKindExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
		case models.LedgerKindPurchasePayment:
			summary.TotalPurchasesPaid = summary.TotalPurchasesPaid.Add(e.Amount)
		case models.LedgerKindDeposit:
			summary.TotalDeposited = summary.TotalDeposited.Add(e.Amount)
		}
	}

	return summary, nil
}

// Movements groups the day's raw entries per kind for display.
func (s *Service) Movements(ctx context.Context, date models.Date) (*models.DayMovements, error) {
	entries, err := s.fetch(ctx, date)
	if err != nil {
		return nil, err
	}

	mv := &models.DayMovements{
		Date:      date,
		Sales:     []models.LedgerEntry{},
		Expenses:  []models.LedgerEntry{},
		Purchases: []models.LedgerEntry{},
		Deposits:  []models.LedgerEntry{},
	}
	for _, e := range entries {
		switch e.Kind {
		case models.LedgerKindSale:
			mv.Sales = append(mv.Sales, e)
		case models.LedgerKindExpense:
			mv.Expenses = append(mv.Expenses, e)
		case models.LedgerKindPurchasePayment:
			mv.Purchases = append(mv.Purchases, e)
		case models.LedgerKindDeposit:
			mv.Deposits = append(mv.Deposits, e)
		}
	}
	return mv, nil
}

// fetch reads a day's entries, mapping any source failure (including a
// caller timeout) to ErrDataUnavailable so the controller can tell a
// retryable outage apart from domain rejections.
func (s *Service) fetch(ctx context.Context, date models.Date) ([]models.LedgerEntry, error) {
	entries, err := s.storage.LedgerStore().ListByDate(ctx, date)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrDataUnavailable, ctxErr)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrDataUnavailable, err)
	}
	return entries, nil
}
