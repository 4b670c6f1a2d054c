package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/codewithboateng/l10nfilter/internal/audit"
	"github.com/codewithboateng/l10nfilter/internal/filter"
	"github.com/codewithboateng/l10nfilter/internal/metrics"
	"github.com/codewithboateng/l10nfilter/internal/storage"
)

// Store is the minimal contract the API needs.
type Store interface {
	ListRuns(limit, offset int) ([]storage.RunRow, error)
	LoadRun(id string) (audit.Run, error)
	LoadLatestRun() (audit.Run, error)
	HasRun(id string) (bool, error)
	ListResults(runID string, minLevel filter.Verdict) ([]audit.Result, error)
	ListWaivers(activeOnly bool) ([]storage.Waiver, error)
}

type Server struct {
	DB             Store
	Logger         *slog.Logger
	AllowedOrigins []string
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	withCORS := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if origin := s.pickCORSOrigin(r); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			h(w, r)
		}
	}

	// Health
	mux.HandleFunc("GET /api/v1/health", withCORS(s.handleHealth))

	// Filters
	mux.HandleFunc("GET /api/v1/products", withCORS(s.handleListProducts))
	mux.HandleFunc("GET /api/v1/products/{name}", withCORS(s.handleGetProduct))
	mux.HandleFunc("GET /api/v1/classify", withCORS(s.handleClassify))

	// Runs
	mux.HandleFunc("GET /api/v1/runs", withCORS(s.handleListRuns))
	mux.HandleFunc("GET /api/v1/runs/latest", withCORS(s.handleGetLatest))
	mux.HandleFunc("GET /api/v1/runs/{id}", withCORS(s.handleGetRun))
	mux.HandleFunc("GET /api/v1/runs/{id}/results", withCORS(s.handleListResults))

	// Waivers (read-only; managed from the CLI)
	mux.HandleFunc("GET /api/v1/waivers", withCORS(s.handleListWaivers))

	mux.Handle("GET /metrics", metrics.Handler())

	// Fallback 404
	mux.HandleFunc("/", withCORS(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	return mux
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Server) pickCORSOrigin(r *http.Request) string {
	if len(s.AllowedOrigins) == 0 {
		return ""
	}
	origin := r.Header.Get("Origin")
	for _, ao := range s.AllowedOrigins {
		if ao == "*" {
			return "*"
		}
		if origin != "" && strings.EqualFold(origin, ao) {
			return origin
		}
	}
	// Not allowed → return empty (no CORS header)
	return ""
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := clamp(parseInt(q.Get("limit"), 20), 1, 200)
	offset := parseInt(q.Get("offset"), 0)

	rows, err := s.DB.ListRuns(limit, offset)
	if err != nil {
		s.dbErr(w, err)
		return
	}
	if rows == nil {
		rows = []storage.RunRow{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": rows, "limit": limit, "offset": offset,
	})
}

func (s *Server) handleGetLatest(w http.ResponseWriter, r *http.Request) {
	run, err := s.DB.LoadLatestRun()
	if err != nil {
		s.notFoundOr500(w, err, "no runs")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.DB.LoadRun(r.PathValue("id"))
	if err != nil {
		s.notFoundOr500(w, err, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	min := filter.Report
	if v := r.URL.Query().Get("min_level"); v != "" {
		p, err := filter.ParseVerdict(v)
		if err != nil {
			s.err(w, http.StatusBadRequest, err.Error())
			return
		}
		min = p
	}
	ok, err := s.DB.HasRun(id)
	if err != nil {
		s.dbErr(w, err)
		return
	}
	if !ok {
		s.err(w, http.StatusNotFound, "run not found")
		return
	}
	items, err := s.DB.ListResults(id, min)
	if err != nil {
		s.dbErr(w, err)
		return
	}
	if items == nil {
		items = []audit.Result{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id": id, "min_level": min, "items": items,
	})
}

func (s *Server) notFoundOr500(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, storage.ErrNotFound) {
		s.err(w, http.StatusNotFound, msg)
		return
	}
	s.dbErr(w, err)
}

func (s *Server) dbErr(w http.ResponseWriter, err error) {
	s.logger().Error("db error", "err", err)
	s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
}

func (s *Server) err(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
