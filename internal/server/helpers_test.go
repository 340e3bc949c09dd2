package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ErikGranda885/restocaja/internal/common"
	"github.com/ErikGranda885/restocaja/internal/models"
)

func TestWriteServiceErrorMapping(t *testing.T) {
	logger := common.NewSilentLogger()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", models.ErrNotFound, http.StatusNotFound, "not_found"},
		{"invalid transition", fmt.Errorf("closure for 2026-03-15 is already closed: %w", models.ErrInvalidTransition), http.StatusConflict, "invalid_transition"},
		{"data unavailable", fmt.Errorf("%w: connection refused", models.ErrDataUnavailable), http.StatusServiceUnavailable, "data_unavailable"},
		{"data corruption", fmt.Errorf("date 2026-03-15: %w", models.ErrDataCorruption), http.StatusInternalServerError, "data_corruption"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, logger, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tc.wantCode, body["code"])
		})
	}
}

func TestWriteServiceErrorHidesOperationalDetail(t *testing.T) {
	logger := common.NewSilentLogger()

	// Operational failures return a generic message, never backend detail.
	rec := httptest.NewRecorder()
	writeServiceError(rec, logger, fmt.Errorf("date 2026-03-15: %w", models.ErrDataCorruption))
	assert.NotContains(t, rec.Body.String(), "2026-03-15")

	rec = httptest.NewRecorder()
	writeServiceError(rec, logger, fmt.Errorf("%w: dial tcp 10.0.0.5:8000", models.ErrDataUnavailable))
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
