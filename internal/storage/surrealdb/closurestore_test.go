package surrealdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ErikGranda885/restocaja/internal/common"
	"github.com/ErikGranda885/restocaja/internal/models"
)

func TestUpsertHonorsCancelledContext(t *testing.T) {
	// A done context must stop the upsert before any attempt; a nil db
	// proves no driver call was made.
	store := NewClosureStore(nil, common.NewSilentLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Upsert(ctx, seedRecord(models.NewDate(2026, time.March, 15)))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
