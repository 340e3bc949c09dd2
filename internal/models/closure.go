package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosureStatus is the lifecycle state of a daily closure.
type ClosureStatus string

const (
	// ClosureStatusPending means the day's closure exists but has not been
	// finalized by an operator.
	ClosureStatusPending ClosureStatus = "pending"
	// ClosureStatusClosed is terminal. No code path reverts a closed record.
	ClosureStatusClosed ClosureStatus = "closed"
)

// moneyScale is the monetary precision used system-wide.
const moneyScale = 2

// ClosureRecord is the authoritative per-day cash reconciliation entry.
// At most one record exists per calendar date; the store enforces this by
// upserting keyed on Date.
type ClosureRecord struct {
	Date               Date            `json:"date"`
	Status             ClosureStatus   `json:"status"`
	TotalSales         decimal.Decimal `json:"total_sales"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	TotalPurchasesPaid decimal.Decimal `json:"total_purchases_paid"`
	TotalDeposited     decimal.Decimal `json:"total_deposited"`
	Available          decimal.Decimal `json:"available"`
	Variance           decimal.Decimal `json:"variance"`
	ClosedBy           string          `json:"closed_by,omitempty"`
	ClosedAt           *time.Time      `json:"closed_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// DaySummary is the ephemeral result of aggregating one day's transactions.
// It exists only to feed reconciliation and is never persisted on its own.
type DaySummary struct {
	Date               Date            `json:"date"`
	TotalSales         decimal.Decimal `json:"total_sales"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	TotalPurchasesPaid decimal.Decimal `json:"total_purchases_paid"`
	TotalDeposited     decimal.Decimal `json:"total_deposited"`
}

// Reconcile computes the derived variance fields from a day summary.
// available = sales − expenses − purchasesPaid; variance = available −
// deposited. Pure: same summary always yields the same result, rounded to the
// system-wide two-decimal precision.
func Reconcile(s DaySummary) (available, variance decimal.Decimal) {
	available = s.TotalSales.Sub(s.TotalExpenses).Sub(s.TotalPurchasesPaid).Round(moneyScale)
	variance = available.Sub(s.TotalDeposited).Round(moneyScale)
	return available, variance
}

// NewClosureFromSummary builds a fresh pending closure record for a day's
// totals with the derived fields computed.
func NewClosureFromSummary(s DaySummary, now time.Time) *ClosureRecord {
	r := &ClosureRecord{
		Date:               s.Date,
		Status:             ClosureStatusPending,
		TotalSales:         s.TotalSales.Round(moneyScale),
		TotalExpenses:      s.TotalExpenses.Round(moneyScale),
		TotalPurchasesPaid: s.TotalPurchasesPaid.Round(moneyScale),
		TotalDeposited:     s.TotalDeposited.Round(moneyScale),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	r.Recompute()
	return r
}

// Recompute rederives Available and Variance from the four stored totals.
// Derived fields never drift from their sources: every write path calls this
// before persisting.
func (r *ClosureRecord) Recompute() {
	r.Available, r.Variance = Reconcile(DaySummary{
		TotalSales:         r.TotalSales,
		TotalExpenses:      r.TotalExpenses,
		TotalPurchasesPaid: r.TotalPurchasesPaid,
		TotalDeposited:     r.TotalDeposited,
	})
}

// IsClosed reports whether the record has reached its terminal state.
func (r *ClosureRecord) IsClosed() bool {
	return r.Status == ClosureStatusClosed
}

// HasVariance reports whether the day's cash does not match deposits.
func (r *ClosureRecord) HasVariance() bool {
	return !r.Variance.IsZero()
}

// ClosureFilter selects a subset of closure records when listing.
type ClosureFilter string

const (
	// FilterNone returns every record.
	FilterNone ClosureFilter = ""
	// FilterPending selects closures that should have happened but didn't:
	// status pending and date strictly before today.
	FilterPending ClosureFilter = "pending"
	// FilterClosed selects finalized closures.
	FilterClosed ClosureFilter = "cerrados"
	// FilterVariance selects records with a non-zero variance, any status.
	FilterVariance ClosureFilter = "diferencia"
	// FilterToClose selects today's still-open closure.
	FilterToClose ClosureFilter = "por-cerrar"
)

// validClosureFilters lists all accepted filter values.
var validClosureFilters = map[ClosureFilter]bool{
	FilterNone:     true,
	FilterPending:  true,
	FilterClosed:   true,
	FilterVariance: true,
	FilterToClose:  true,
}

// ValidClosureFilter returns true if f is a recognized filter value.
func ValidClosureFilter(f ClosureFilter) bool {
	return validClosureFilters[f]
}

// Matches reports whether a record satisfies the filter relative to today.
// Filtering never mutates stored status.
func (f ClosureFilter) Matches(r *ClosureRecord, today Date) bool {
	switch f {
	case FilterPending:
		return r.Status == ClosureStatusPending && r.Date.Before(today)
	case FilterClosed:
		return r.Status == ClosureStatusClosed
	case FilterVariance:
		return r.HasVariance()
	case FilterToClose:
		return r.Status == ClosureStatusPending && r.Date.Equal(today)
	default:
		return true
	}
}
