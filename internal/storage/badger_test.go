package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ErikGranda885/restocaja/internal/common"
	"github.com/ErikGranda885/restocaja/internal/models"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()
	db, err := NewBadgerDB(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testRecord(date models.Date) *models.ClosureRecord {
	return models.NewClosureFromSummary(models.DaySummary{
		Date:           date,
		TotalSales:     decimal.RequireFromString("500"),
		TotalExpenses:  decimal.RequireFromString("120"),
		TotalDeposited: decimal.RequireFromString("380"),
	}, time.Now())
}

func TestClosureStoreUpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	store := newClosureStore(db, common.NewSilentLogger())
	ctx := context.Background()

	date := models.NewDate(2026, time.March, 15)
	require.NoError(t, store.Upsert(ctx, testRecord(date)))

	got, err := store.Get(ctx, date)
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(date))
	assert.Equal(t, models.ClosureStatusPending, got.Status)
	assert.True(t, got.TotalSales.Equal(decimal.RequireFromString("500")))
}

func TestClosureStoreGetMissing(t *testing.T) {
	db := newTestDB(t)
	store := newClosureStore(db, common.NewSilentLogger())

	_, err := store.Get(context.Background(), models.NewDate(2026, time.March, 15))
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestClosureStoreUpsertIsKeyedByDate(t *testing.T) {
	db := newTestDB(t)
	store := newClosureStore(db, common.NewSilentLogger())
	ctx := context.Background()

	date := models.NewDate(2026, time.March, 15)
	require.NoError(t, store.Upsert(ctx, testRecord(date)))

	// A second upsert for the same date must replace, never duplicate.
	updated := testRecord(date)
	updated.TotalSales = decimal.RequireFromString("750")
	updated.Recompute()
	require.NoError(t, store.Upsert(ctx, updated))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].TotalSales.Equal(decimal.RequireFromString("750")))
}

func TestClosureStoreDelete(t *testing.T) {
	db := newTestDB(t)
	store := newClosureStore(db, common.NewSilentLogger())
	ctx := context.Background()

	date := models.NewDate(2026, time.March, 15)
	require.NoError(t, store.Upsert(ctx, testRecord(date)))
	require.NoError(t, store.Delete(ctx, date))

	_, err := store.Get(ctx, date)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestClosureStoreDeleteMissing(t *testing.T) {
	db := newTestDB(t)
	store := newClosureStore(db, common.NewSilentLogger())

	err := store.Delete(context.Background(), models.NewDate(2026, time.March, 15))
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLedgerStoreAppendAndListByDate(t *testing.T) {
	db := newTestDB(t)
	store := newLedgerStore(db, common.NewSilentLogger())
	ctx := context.Background()

	date := models.NewDate(2026, time.March, 15)
	other := models.NewDate(2026, time.March, 16)

	for i, amount := range []string{"100", "200", "50"} {
		entry := &models.LedgerEntry{
			ID:         uuid.New().String(),
			Kind:       models.LedgerKindSale,
			Date:       date,
			Amount:     decimal.RequireFromString(amount),
			RecordedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, store.Append(ctx, entry))
	}
	require.NoError(t, store.Append(ctx, &models.LedgerEntry{
		ID:         uuid.New().String(),
		Kind:       models.LedgerKindExpense,
		Date:       other,
		Amount:     decimal.RequireFromString("33"),
		RecordedAt: time.Now(),
	}))

	entries, err := store.ListByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.True(t, e.Date.Equal(date))
	}

	// Entries come back in recording order.
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].RecordedAt.Before(entries[i-1].RecordedAt))
	}
}

func TestLedgerStoreListEmptyDay(t *testing.T) {
	db := newTestDB(t)
	store := newLedgerStore(db, common.NewSilentLogger())

	entries, err := store.ListByDate(context.Background(), models.NewDate(2026, time.March, 15))
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestNewStorageManagerUnknownBackend(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Storage.Backend = "cassandra"

	_, err := NewStorageManager(common.NewSilentLogger(), cfg)
	assert.Error(t, err)
}

func TestNewStorageManagerBadger(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Storage.Backend = BackendBadger
	cfg.Storage.Path = t.TempDir()

	mgr, err := NewStorageManager(common.NewSilentLogger(), cfg)
	require.NoError(t, err)
	defer mgr.Close()

	assert.NotNil(t, mgr.ClosureStore())
	assert.NotNil(t, mgr.LedgerStore())
}
