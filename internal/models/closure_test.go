package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func summaryFor(sales, expenses, purchases, deposited string) DaySummary {
	return DaySummary{
		Date:               NewDate(2026, time.March, 15),
		TotalSales:         money(sales),
		TotalExpenses:      money(expenses),
		TotalPurchasesPaid: money(purchases),
		TotalDeposited:     money(deposited),
	}
}

func TestReconcileBalancedDay(t *testing.T) {
	// 500 sold, 120 spent, 80 paid to suppliers, 300 deposited.
	available, variance := Reconcile(summaryFor("500", "120", "80", "300"))
	assert.True(t, available.Equal(money("300")), "available = %s", available)
	assert.True(t, variance.IsZero(), "variance = %s", variance)
}

func TestReconcileShortDeposit(t *testing.T) {
	// Same day but only 280 reached the bank: 20 short.
	available, variance := Reconcile(summaryFor("500", "120", "80", "280"))
	assert.True(t, available.Equal(money("300")))
	assert.True(t, variance.Equal(money("20")))
}

func TestReconcileOverDeposit(t *testing.T) {
	available, variance := Reconcile(summaryFor("500", "120", "80", "320"))
	assert.True(t, available.Equal(money("300")))
	assert.True(t, variance.Equal(money("-20")))
}

func TestReconcileZeroDay(t *testing.T) {
	available, variance := Reconcile(summaryFor("0", "0", "0", "0"))
	assert.True(t, available.IsZero())
	assert.True(t, variance.IsZero())
}

func TestReconcileDecimalPrecision(t *testing.T) {
	// Classic float trap: 0.1 + 0.2 style amounts must reconcile exactly.
	available, variance := Reconcile(summaryFor("10.10", "0.20", "0.30", "9.60"))
	assert.True(t, available.Equal(money("9.60")), "available = %s", available)
	assert.True(t, variance.IsZero(), "variance = %s", variance)
}

func TestReconcileIsPure(t *testing.T) {
	s := summaryFor("123.45", "67.89", "10.00", "45.56")
	a1, v1 := Reconcile(s)
	a2, v2 := Reconcile(s)
	assert.True(t, a1.Equal(a2))
	assert.True(t, v1.Equal(v2))
}

func TestNewClosureFromSummary(t *testing.T) {
	now := time.Now()
	r := NewClosureFromSummary(summaryFor("500", "120", "80", "300"), now)

	assert.Equal(t, ClosureStatusPending, r.Status)
	assert.True(t, r.Available.Equal(money("300")))
	assert.True(t, r.Variance.IsZero())
	assert.Empty(t, r.ClosedBy)
	assert.Nil(t, r.ClosedAt)
	assert.Equal(t, now, r.CreatedAt)
	assert.Equal(t, now, r.UpdatedAt)
}

func TestRecomputeKeepsDerivedFieldsConsistent(t *testing.T) {
	r := NewClosureFromSummary(summaryFor("500", "120", "80", "300"), time.Now())
	require.True(t, r.Variance.IsZero())

	r.TotalDeposited = money("250")
	r.Recompute()
	assert.True(t, r.Variance.Equal(money("50")))
	assert.True(t, r.Available.Equal(money("300")))
}

func TestValidClosureFilter(t *testing.T) {
	assert.True(t, ValidClosureFilter(FilterNone))
	assert.True(t, ValidClosureFilter(FilterPending))
	assert.True(t, ValidClosureFilter(FilterClosed))
	assert.True(t, ValidClosureFilter(FilterVariance))
	assert.True(t, ValidClosureFilter(FilterToClose))
	assert.False(t, ValidClosureFilter("abierto"))
}

func TestClosureFilterMatches(t *testing.T) {
	today := NewDate(2026, time.March, 15)
	yesterday := NewDate(2026, time.March, 14)

	pendingPast := NewClosureFromSummary(DaySummary{Date: yesterday, TotalSales: money("100"), TotalDeposited: money("90")}, time.Now())
	pendingToday := NewClosureFromSummary(DaySummary{Date: today, TotalSales: money("100"), TotalDeposited: money("100")}, time.Now())
	closedPast := NewClosureFromSummary(DaySummary{Date: yesterday, TotalSales: money("100"), TotalDeposited: money("100")}, time.Now())
	closedPast.Status = ClosureStatusClosed

	tests := []struct {
		name   string
		filter ClosureFilter
		record *ClosureRecord
		want   bool
	}{
		{"none matches everything", FilterNone, closedPast, true},
		{"pending matches open past day", FilterPending, pendingPast, true},
		{"pending excludes today", FilterPending, pendingToday, false},
		{"pending excludes closed", FilterPending, closedPast, false},
		{"cerrados matches closed", FilterClosed, closedPast, true},
		{"cerrados excludes open", FilterClosed, pendingPast, false},
		{"diferencia matches non-zero variance", FilterVariance, pendingPast, true},
		{"diferencia excludes balanced", FilterVariance, pendingToday, false},
		{"por-cerrar matches today's open record", FilterToClose, pendingToday, true},
		{"por-cerrar excludes past days", FilterToClose, pendingPast, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(tc.record, today))
		})
	}
}

func TestHasVariance(t *testing.T) {
	r := NewClosureFromSummary(summaryFor("500", "120", "80", "300"), time.Now())
	assert.False(t, r.HasVariance())

	r.TotalDeposited = money("299.99")
	r.Recompute()
	assert.True(t, r.HasVariance())
}
