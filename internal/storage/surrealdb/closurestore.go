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

// closureDoc is the wire shape stored in the closure table. Dates travel as
// YYYY-MM-DD strings and amounts as exact decimal strings so the document
// survives any CBOR round trip without precision loss.
type closureDoc struct {
	Date               string     `json:"date"`
	Status             string     `json:"status"`
	TotalSales         string     `json:"total_sales"`
	TotalExpenses      string     `json:"total_expenses"`
	TotalPurchasesPaid string     `json:"total_purchases_paid"`
	TotalDeposited     string     `json:"total_deposited"`
	Available          string     `json:"available"`
	Variance           string     `json:"variance"`
	ClosedBy           string     `json:"closed_by,omitempty"`
	ClosedAt           *time.Time `json:"closed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toClosureDoc(r *models.ClosureRecord) *closureDoc {
	return &closureDoc{
		Date:               r.Date.String(),
		Status:             string(r.Status),
		TotalSales:         r.TotalSales.String(),
		TotalExpenses:      r.TotalExpenses.String(),
		TotalPurchasesPaid: r.TotalPurchasesPaid.String(),
		TotalDeposited:     r.TotalDeposited.String(),
		Available:          r.Available.String(),
		Variance:           r.Variance.String(),
		ClosedBy:           r.ClosedBy,
		ClosedAt:           r.ClosedAt,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func fromClosureDoc(doc *closureDoc) (*models.ClosureRecord, error) {
	date, err := models.ParseDate(doc.Date)
	if err != nil {
		return nil, fmt.Errorf("stored closure has bad date: %w", err)
	}

	amounts := make([]decimal.Decimal, 6)
	for i, s := range []string{doc.TotalSales, doc.TotalExpenses, doc.TotalPurchasesPaid, doc.TotalDeposited, doc.Available, doc.Variance} {
		if s == "" {
			s = "0"
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("stored closure has bad amount %q: %w", s, err)
		}
		amounts[i] = d
	}

	return &models.ClosureRecord{
		Date:               date,
		Status:             models.ClosureStatus(doc.Status),
		TotalSales:         amounts[0],
		TotalExpenses:      amounts[1],
		TotalPurchasesPaid: amounts[2],
		TotalDeposited:     amounts[3],
		Available:          amounts[4],
		Variance:           amounts[5],
		ClosedBy:           doc.ClosedBy,
		ClosedAt:           doc.ClosedAt,
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
	}, nil
}

// ClosureStore implements interfaces.ClosureStore on SurrealDB. Records are
// keyed closure:⟨date⟩, so UPSERT is atomic per day and duplicates are
// structurally impossible at the key level.
type ClosureStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewClosureStore(db *surrealdb.DB, logger *common.Logger) *ClosureStore {
	return &ClosureStore{
		db:     db,
		logger: logger,
	}
}

func (s *ClosureStore) Get(ctx context.Context, date models.Date) (*models.ClosureRecord, error) {
	doc, err := surrealdb.Select[closureDoc](ctx, s.db, surrealmodels.NewRecordID("closure", date.String()))
	if err != nil {
		if isNotFoundError(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select closure: %w", err)
	}
	if doc == nil || doc.Date == "" {
		return nil, models.ErrNotFound
	}
	return fromClosureDoc(doc)
}

func (s *ClosureStore) Upsert(ctx context.Context, record *models.ClosureRecord) error {
	record.UpdatedAt = time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = record.UpdatedAt
	}

	sql := "UPSERT $rid CONTENT $record"
	vars := map[string]any{
		"rid":    surrealmodels.NewRecordID("closure", record.Date.String()),
		"record": toClosureDoc(record),
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		_, err := surrealdb.Query[[]closureDoc](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to upsert closure after retries: %w", lastErr)
}

func (s *ClosureStore) List(ctx context.Context) ([]*models.ClosureRecord, error) {
	results, err := surrealdb.Query[[]closureDoc](ctx, s.db, "SELECT * FROM closure ORDER BY date DESC", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list closures: %w", err)
	}

	var records []*models.ClosureRecord
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			record, err := fromClosureDoc(&(*results)[0].Result[i])
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *ClosureStore) Delete(ctx context.Context, date models.Date) error {
	// Confirm existence first so a missing record surfaces as ErrNotFound
	// rather than a silent no-op.
	if _, err := s.Get(ctx, date); err != nil {
		return err
	}

	_, err := surrealdb.Delete[closureDoc](ctx, s.db, surrealmodels.NewRecordID("closure", date.String()))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete closure: %w", err)
	}
	return nil
}
