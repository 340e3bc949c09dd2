package closure

import (
	"context"
	"fmt"

	"github.com/ErikGranda885/restocaja/internal/interfaces"
	"github.com/ErikGranda885/restocaja/internal/models"
)

// Classification describes today's closure state.
type Classification struct {
	// HasOpenToday is true when a pending record already exists for today.
	HasOpenToday bool
	// RequiresCreation is true when no record exists for today.
	RequiresCreation bool
}

// Detector determines whether today still needs a closure. A day that is
// already closed yields both flags false: it is settled and must not be
// recreated.
type Detector struct {
	store interfaces.ClosureStore
}

// NewDetector creates a pending detector over a closure store.
func NewDetector(store interfaces.ClosureStore) *Detector {
	return &Detector{store: store}
}

// Classify scans all records for one matching today. Finding two records for
// the same date should be structurally impossible; if it happens anyway the
// detector refuses to pick one and reports corruption.
func (d *Detector) Classify(ctx context.Context, today models.Date) (Classification, error) {
	records, err := d.store.List(ctx)
	if err != nil {
		return Classification{}, fmt.Errorf("failed to classify today: %w", err)
	}

	var found *models.ClosureRecord
	for _, r := range records {
		if !r.Date.Equal(today) {
			continue
		}
		if found != nil {
			return Classification{}, fmt.Errorf("date %s: %w", today, models.ErrDataCorruption)
		}
		found = r
	}

	if found == nil {
		return Classification{RequiresCreation: true}, nil
	}
	if found.Status == models.ClosureStatusPending {
		return Classification{HasOpenToday: true}, nil
	}
	return Classification{}, nil
}
