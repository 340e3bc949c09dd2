package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/ErikGranda885/restocaja/internal/common"
	"github.com/ErikGranda885/restocaja/internal/models"
)

// ledgerDoc is the wire shape stored in the ledger table.
type ledgerDoc struct {
	ID         string    `json:"entry_id"`
	Kind       string    `json:"kind"`
	Date       string    `json:"date"`
	Amount     string    `json:"amount"`
	Concept    string    `json:"concept,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

func toLedgerDoc(e *models.LedgerEntry) *ledgerDoc {
	return &ledgerDoc{
		ID:         e.ID,
		Kind:       string(e.Kind),
		Date:       e.Date.String(),
		Amount:     e.Amount.String(),
		Concept:    e.Concept,
		RecordedAt: e.RecordedAt,
	}
}

func fromLedgerDoc(doc *ledgerDoc) (models.LedgerEntry, error) {
	date, err := models.ParseDate(doc.Date)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("stored ledger entry has bad date: %w", err)
	}
	amount, err := decimal.NewFromString(doc.Amount)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("stored ledger entry has bad amount %q: %w", doc.Amount, err)
	}
	return models.LedgerEntry{
		ID:         doc.ID,
		Kind:       models.LedgerKind(doc.Kind),
		Date:       date,
		Amount:     amount,
		Concept:    doc.Concept,
		RecordedAt: doc.RecordedAt,
	}, nil
}

// LedgerStore implements interfaces.LedgerStore on SurrealDB.
type LedgerStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewLedgerStore(db *surrealdb.DB, logger *common.Logger) *LedgerStore {
	return &LedgerStore{
		db:     db,
		logger: logger,
	}
}

func (s *LedgerStore) Append(ctx context.Context, entry *models.LedgerEntry) error {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}

	sql := "CREATE $rid CONTENT $entry"
	vars := map[string]any{
		"rid":   surrealmodels.NewRecordID("ledger", entry.ID),
		"entry": toLedgerDoc(entry),
	}
	if _, err := surrealdb.Query[[]ledgerDoc](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to append ledger entry %s: %w", entry.ID, err)
	}
	return nil
}

func (s *LedgerStore) ListByDate(ctx context.Context, date models.Date) ([]models.LedgerEntry, error) {
	sql := "SELECT * FROM ledger WHERE date = $date ORDER BY recorded_at ASC"
	vars := map[string]any{"date": date.String()}

	results, err := surrealdb.Query[[]ledgerDoc](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for %s: %w", date, err)
	}

	entries := []models.LedgerEntry{}
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			entry, err := fromLedgerDoc(&(*results)[0].Result[i])
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
