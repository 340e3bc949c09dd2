package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ErikGranda885/restocaja/internal/models"
)

// handleLedgerRoot handles POST /api/ledger (record an entry) and
// GET /api/ledger?date=YYYY-MM-DD[&kind=...] (list a day's entries).
func (s *Server) handleLedgerRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleLedgerList(w, r)
	case http.MethodPost:
		s.handleLedgerRecord(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) handleLedgerRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind    models.LedgerKind `json:"kind"`
		Date    models.Date       `json:"date"`
		Amount  decimal.Decimal   `json:"amount"`
		Concept string            `json:"concept"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !models.ValidLedgerKind(req.Kind) {
		WriteError(w, http.StatusBadRequest, "Unknown ledger kind: "+string(req.Kind))
		return
	}
	if req.Date.IsZero() {
		WriteError(w, http.StatusBadRequest, "date is required")
		return
	}
	if req.Amount.IsNegative() {
		WriteError(w, http.StatusBadRequest, "amount must be non-negative")
		return
	}

	entry, err := s.app.Ledger.Record(r.Context(), req.Kind, req.Date, req.Amount, req.Concept)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleLedgerList(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		WriteError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}
	date, ok := parseDateParam(w, rawDate)
	if !ok {
		return
	}

	kind := models.LedgerKind(r.URL.Query().Get("kind"))
	if kind != "" && !models.ValidLedgerKind(kind) {
		WriteError(w, http.StatusBadRequest, "Unknown ledger kind: "+string(kind))
		return
	}

	entries, err := s.app.Ledger.Entries(r.Context(), date, kind)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}
