package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerKind categorizes a raw cash movement.
type LedgerKind string

const (
	LedgerKindSale            LedgerKind = "sale"
	LedgerKindExpense         LedgerKind = "expense"
	LedgerKindPurchasePayment LedgerKind = "purchase_payment"
	LedgerKindDeposit         LedgerKind = "deposit"
)

// validLedgerKinds lists all accepted movement kinds.
var validLedgerKinds = map[LedgerKind]bool{
	LedgerKindSale:            true,
	LedgerKindExpense:         true,
	LedgerKindPurchasePayment: true,
	LedgerKindDeposit:         true,
}

// ValidLedgerKind returns true if k is a valid movement kind.
func ValidLedgerKind(k LedgerKind) bool {
	return validLedgerKinds[k]
}

// LedgerEntry is a single raw transaction: a sale, an expense, a payment to a
// supplier, or a bank deposit. Entries are immutable once recorded; the
// closure engine only ever reads them.
type LedgerEntry struct {
	ID         string          `json:"id"`
	Kind       LedgerKind      `json:"kind"`
	Date       Date            `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Concept    string          `json:"concept,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// DayMovements groups a day's raw entries per kind for display. It bypasses
// reconciliation entirely.
type DayMovements struct {
	Date      Date          `json:"date"`
	Sales     []LedgerEntry `json:"sales"`
	Expenses  []LedgerEntry `json:"expenses"`
	Purchases []LedgerEntry `json:"purchases"`
	Deposits  []LedgerEntry `json:"deposits"`
}
