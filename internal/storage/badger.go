// Package storage provides persistence for closure and ledger records with
// pluggable backends.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/ErikGranda885/restocaja/internal/common"
	"github.com/ErikGranda885/restocaja/internal/interfaces"
	"github.com/ErikGranda885/restocaja/internal/models"
)

// BadgerDB wraps badgerhold for typed storage.
type BadgerDB struct {
	store  *badgerhold.Store
	logger *common.Logger
}

// NewBadgerDB opens the embedded store at the configured path.
func NewBadgerDB(logger *common.Logger, path string) (*BadgerDB, error) {
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil // Disable badger's internal logging

	store, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}

	logger.Debug().Str("path", path).Msg("BadgerDB opened")

	return &BadgerDB{
		store:  store,
		logger: logger,
	}, nil
}

// Close closes the database.
func (db *BadgerDB) Close() error {
	if db.store != nil {
		return db.store.Close()
	}
	return nil
}

// closureStore implements interfaces.ClosureStore on BadgerDB. Records are
// keyed by the date string, so an upsert can never produce two records for
// one day.
type closureStore struct {
	db     *BadgerDB
	logger *common.Logger
}

func newClosureStore(db *BadgerDB, logger *common.Logger) *closureStore {
	return &closureStore{db: db, logger: logger}
}

func (s *closureStore) Get(ctx context.Context, date models.Date) (*models.ClosureRecord, error) {
	var record models.ClosureRecord
	err := s.db.store.Get(date.String(), &record)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get closure for %s: %w", date, err)
	}
	return &record, nil
}

func (s *closureStore) Upsert(ctx context.Context, record *models.ClosureRecord) error {
	record.UpdatedAt = time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = record.UpdatedAt
	}
	if err := s.db.store.Upsert(record.Date.String(), record); err != nil {
		return fmt.Errorf("failed to upsert closure for %s: %w", record.Date, err)
	}
	return nil
}

func (s *closureStore) List(ctx context.Context) ([]*models.ClosureRecord, error) {
	var records []models.ClosureRecord
	if err := s.db.store.Find(&records, nil); err != nil {
		return nil, fmt.Errorf("failed to list closures: %w", err)
	}

	out := make([]*models.ClosureRecord, len(records))
	for i := range records {
		out[i] = &records[i]
	}
	return out, nil
}

func (s *closureStore) Delete(ctx context.Context, date models.Date) error {
	err := s.db.store.Delete(date.String(), &models.ClosureRecord{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to delete closure for %s: %w", date, err)
	}
	return nil
}

// ledgerStore implements interfaces.LedgerStore on BadgerDB, keyed by entry ID.
type ledgerStore struct {
	db     *BadgerDB
	logger *common.Logger
}

func newLedgerStore(db *BadgerDB, logger *common.Logger) *ledgerStore {
	return &ledgerStore{db: db, logger: logger}
}

func (s *ledgerStore) Append(ctx context.Context, entry *models.LedgerEntry) error {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}
	if err := s.db.store.Insert(entry.ID, entry); err != nil {
		return fmt.Errorf("failed to append ledger entry %s: %w", entry.ID, err)
	}
	return nil
}

func (s *ledgerStore) ListByDate(ctx context.Context, date models.Date) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	query := badgerhold.Where("Date").Eq(date).SortBy("RecordedAt")
	if err := s.db.store.Find(&entries, query); err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for %s: %w", date, err)
	}
	if entries == nil {
		entries = []models.LedgerEntry{}
	}
	return entries, nil
}

// Compile-time checks
var (
	_ interfaces.ClosureStore = (*closureStore)(nil)
	_ interfaces.LedgerStore  = (*ledgerStore)(nil)
)
