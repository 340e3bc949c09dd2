package server

import (
	"net/http"
	"runtime"
	"strings"

	"github.com/ErikGranda885/restocaja/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/debug/memstats", s.handleMemstats)

	// Closures
	mux.HandleFunc("/api/closures/", s.routeClosures)
	mux.HandleFunc("/api/closures", s.handleClosuresRoot)

	// Ledger
	mux.HandleFunc("/api/ledger", s.handleLedgerRoot)
}

// routeClosures dispatches /api/closures/{...} to the appropriate handler.
func (s *Server) routeClosures(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/closures/")
	if path == "" {
		s.handleClosuresRoot(w, r)
		return
	}

	if strings.HasPrefix(path, "by-date/") {
		s.handleClosureByDate(w, r, strings.TrimPrefix(path, "by-date/"))
		return
	}

	parts := strings.SplitN(path, "/", 2)
	rawDate := parts[0]
	subpath := ""
	if len(parts) > 1 {
		subpath = parts[1]
	}

	switch subpath {
	case "":
		s.handleClosureDelete(w, r, rawDate)
	case "close":
		s.handleClosureClose(w, r, rawDate)
	case "movements":
		s.handleClosureMovements(w, r, rawDate)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":     s.app.Config.Environment,
		"storage_backend": s.app.Config.Storage.Backend,
		"storage_path":    s.app.Config.Storage.Path,
		"logging_level":   s.app.Config.Logging.Level,
	})
}

func (s *Server) handleMemstats(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"heap_alloc_bytes": m.HeapAlloc,
		"heap_inuse_bytes": m.HeapInuse,
		"sys_bytes":        m.Sys,
		"num_gc":           m.NumGC,
	})
}
