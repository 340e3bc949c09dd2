package surrealdb

// Integration tests against a real SurrealDB instance via testcontainers.
// Skipped automatically when Docker is not available.

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ErikGranda885/restocaja/internal/common"
	"github.com/ErikGranda885/restocaja/internal/models"
)

var (
	surrealOnce    sync.Once
	surrealAddress string
	surrealErr     error
)

// startSurrealDB starts one shared SurrealDB container for the test run.
func startSurrealDB(t *testing.T) string {
	t.Helper()

	if os.Getenv("RESTOCAJA_SKIP_CONTAINERS") != "" {
		t.Skip("container tests disabled")
	}

	surrealOnce.Do(func() {
		ctx := context.Background()

		req := testcontainers.ContainerRequest{
			Image:        "surrealdb/surrealdb:v3.0.0",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"start", "--user", "root", "--pass", "root"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("8000/tcp"),
				wait.ForLog("Started web server"),
			).WithDeadline(60 * time.Second),
		}

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err != nil {
			surrealErr = fmt.Errorf("start SurrealDB container: %w", err)
			return
		}

		host, err := container.Host(ctx)
		if err != nil {
			container.Terminate(ctx)
			surrealErr = fmt.Errorf("get SurrealDB host: %w", err)
			return
		}
		mappedPort, err := container.MappedPort(ctx, "8000/tcp")
		if err != nil {
			container.Terminate(ctx)
			surrealErr = fmt.Errorf("get SurrealDB port: %w", err)
			return
		}

		surrealAddress = fmt.Sprintf("ws://%s:%s/rpc", host, mappedPort.Port())
	})

	if surrealErr != nil {
		t.Skipf("SurrealDB container unavailable: %v", surrealErr)
	}
	return surrealAddress
}

// newTestManager connects to the shared container with a unique database per
// test so tests never see each other's records.
func newTestManager(t *testing.T) *Manager {
	t.Helper()

	cfg := common.NewDefaultConfig()
	cfg.Storage.Backend = "surrealdb"
	cfg.Storage.Address = startSurrealDB(t)
	cfg.Storage.Username = "root"
	cfg.Storage.Password = "root"
	cfg.Storage.Namespace = "restocaja_test"
	cfg.Storage.Database = "db_" + uuid.New().String()[:8]

	mgr, err := NewManager(common.NewSilentLogger(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func seedRecord(date models.Date) *models.ClosureRecord {
	return models.NewClosureFromSummary(models.DaySummary{
		Date:           date,
		TotalSales:     decimal.RequireFromString("500.25"),
		TotalExpenses:  decimal.RequireFromString("120"),
		TotalDeposited: decimal.RequireFromString("380.25"),
	}, time.Now())
}

func TestSurrealClosureRoundTrip(t *testing.T) {
	mgr := newTestManager(t)
	store := mgr.ClosureStore()
	ctx := context.Background()

	date := models.NewDate(2026, time.March, 15)
	require.NoError(t, store.Upsert(ctx, seedRecord(date)))

	got, err := store.Get(ctx, date)
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(date))
	assert.True(t, got.TotalSales.Equal(decimal.RequireFromString("500.25")))
	assert.True(t, got.Available.Equal(decimal.RequireFromString("380.25")))
	assert.True(t, got.Variance.IsZero())
}

func TestSurrealClosureGetMissing(t *testing.T) {
	mgr := newTestManager(t)

	_, err := mgr.ClosureStore().Get(context.Background(), models.NewDate(2026, time.March, 15))
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSurrealClosureUpsertReplaces(t *testing.T) {
	mgr := newTestManager(t)
	store := mgr.ClosureStore()
	ctx := context.Background()

	date := models.NewDate(2026, time.March, 15)
	require.NoError(t, store.Upsert(ctx, seedRecord(date)))

	updated := seedRecord(date)
	updated.TotalSales = decimal.RequireFromString("900")
	updated.Recompute()
	require.NoError(t, store.Upsert(ctx, updated))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].TotalSales.Equal(decimal.RequireFromString("900")))
}

func TestSurrealClosureDelete(t *testing.T) {
	mgr := newTestManager(t)
	store := mgr.ClosureStore()
	ctx := context.Background()

	date := models.NewDate(2026, time.March, 15)
	require.NoError(t, store.Upsert(ctx, seedRecord(date)))
	require.NoError(t, store.Delete(ctx, date))

	_, err := store.Get(ctx, date)
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = store.Delete(ctx, date)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSurrealLedgerRoundTrip(t *testing.T) {
	mgr := newTestManager(t)
	store := mgr.LedgerStore()
	ctx := context.Background()

	date := models.NewDate(2026, time.March, 15)
	entry := &models.LedgerEntry{
		ID:         uuid.New().String(),
		Kind:       models.LedgerKindSale,
		Date:       date,
		Amount:     decimal.RequireFromString("42.42"),
		Concept:    "almuerzo",
		RecordedAt: time.Now(),
	}
	require.NoError(t, store.Append(ctx, entry))

	entries, err := store.ListByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.LedgerKindSale, entries[0].Kind)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("42.42")))
	assert.Equal(t, "almuerzo", entries[0].Concept)

	other, err := store.ListByDate(ctx, models.NewDate(2026, time.March, 16))
	require.NoError(t, err)
	assert.Empty(t, other)
}
