package server

import (
	"fmt"
	"net/http"

	"github.com/ErikGranda885/restocaja/internal/models"
)

// handleClosuresRoot handles GET /api/closures (list) and
// POST /api/closures (ensure today's record exists).
func (s *Server) handleClosuresRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleClosuresList(w, r)
	case http.MethodPost:
		s.handleClosureEnsure(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) handleClosuresList(w http.ResponseWriter, r *http.Request) {
	filter := models.ClosureFilter(r.URL.Query().Get("status"))
	if !models.ValidClosureFilter(filter) {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unknown status filter: %s", filter))
		return
	}

	records, err := s.app.Closures.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"closures": records,
		"count":    len(records),
	})
}

func (s *Server) handleClosureEnsure(w http.ResponseWriter, r *http.Request) {
	record, err := s.app.Closures.EnsureToday(r.Context())
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

// handleClosureByDate handles GET /api/closures/by-date/{date}.
func (s *Server) handleClosureByDate(w http.ResponseWriter, r *http.Request, rawDate string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	date, ok := parseDateParam(w, rawDate)
	if !ok {
		return
	}

	record, err := s.app.Closures.GetByDate(r.Context(), date)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

// handleClosureClose handles POST /api/closures/{date}/close.
func (s *Server) handleClosureClose(w http.ResponseWriter, r *http.Request, rawDate string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	date, ok := parseDateParam(w, rawDate)
	if !ok {
		return
	}

	var req struct {
		ClosedBy string `json:"closed_by"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.ClosedBy == "" {
		WriteError(w, http.StatusBadRequest, "closed_by is required")
		return
	}

	record, err := s.app.Closures.Close(r.Context(), date, req.ClosedBy)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

// handleClosureDelete handles DELETE /api/closures/{date}.
func (s *Server) handleClosureDelete(w http.ResponseWriter, r *http.Request, rawDate string) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	date, ok := parseDateParam(w, rawDate)
	if !ok {
		return
	}

	if err := s.app.Closures.Delete(r.Context(), date); err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Closure for %s deleted", date),
	})
}

// handleClosureMovements handles GET /api/closures/{date}/movements.
func (s *Server) handleClosureMovements(w http.ResponseWriter, r *http.Request, rawDate string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	date, ok := parseDateParam(w, rawDate)
	if !ok {
		return
	}

	movements, err := s.app.Ledger.Movements(r.Context(), date)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, movements)
}
