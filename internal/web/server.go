// Package web has the HTTP API surface. It serves the same report, overview
// and trend results as the CLI commands, rendered as JSON envelopes.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dorascope/dorascope/core"
	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// requestTimeout bounds how long one API request may spend fetching events.
const requestTimeout = 2 * time.Minute

// Server handles HTTP requests.
type Server struct {
	Router *chi.Mux

	config   *contract.Config
	provider contract.EventProvider
	manager  contract.HistoryManager
}

// NewServer creates a web server around a validated base configuration.
// Query parameters override the base configuration per request.
func NewServer(cfg *contract.Config, provider contract.EventProvider, mgr contract.HistoryManager) *Server {
	s := &Server{config: cfg, provider: provider, manager: mgr}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Request logging middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	// Health check endpoint
	r.Get("/health", s.healthCheck)

	// API endpoints
	r.Route("/api", func(r chi.Router) {
		r.Get("/report", s.getReport)
		r.Get("/overview", s.getOverview)
		r.Get("/trends", s.getTrends)
		r.Get("/status", s.getStatus)
	})

	s.Router = r
}

// Start serves HTTP on the given address and blocks until the listener stops.
func (s *Server) Start(addr string) error {
	if s.config.UseEmojis {
		fmt.Printf("🚀 Serving DORA metrics API on %s\n", addr)
	} else {
		fmt.Printf("Serving DORA metrics API on %s\n", addr)
	}
	fmt.Println("  GET /health")
	fmt.Println("  GET /api/report?repos=owner/name[,...]&period=30&detail=yes")
	fmt.Println("  GET /api/overview?from-history=yes")
	fmt.Println("  GET /api/trends?weeks=8")
	fmt.Println("  GET /api/status")

	return http.ListenAndServe(addr, s.Router)
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "dorascope-api",
	})
}

// getReport composes and returns per-repository metric reports.
func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(cfg.Repos) == 0 {
		http.Error(w, "no repositories specified. Pass ?repos=owner/name", http.StatusBadRequest)
		return
	}

	result, err := core.GetReportResults(core.WithSuppressHeader(r.Context()), cfg, s.provider, s.manager)
	if err != nil {
		contract.LogWarn("Report request failed", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEnvelope(w, result)
}

// getOverview aggregates and returns the multi-repository summary.
func (s *Server) getOverview(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(cfg.Repos) == 0 && !cfg.FromHistory {
		http.Error(w, "no repositories specified. Pass ?repos=owner/name or ?from-history=yes", http.StatusBadRequest)
		return
	}

	result, err := core.GetOverviewResults(core.WithSuppressHeader(r.Context()), cfg, s.provider, s.manager)
	if err != nil {
		contract.LogWarn("Overview request failed", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEnvelope(w, result)
}

// getTrends returns the weekly trend rows with their change column.
func (s *Server) getTrends(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(cfg.Repos) == 0 {
		http.Error(w, "no repositories specified. Pass ?repos=owner/name", http.StatusBadRequest)
		return
	}

	result, err := core.GetTrendsResults(core.WithSuppressHeader(r.Context()), cfg, s.provider, s.manager)
	if err != nil {
		contract.LogWarn("Trends request failed", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEnvelope(w, result)
}

// getStatus returns the history store status.
func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	store := s.historyStore()
	if store == nil {
		http.Error(w, "no history backend configured", http.StatusServiceUnavailable)
		return
	}

	status, err := store.GetStatus()
	if err != nil {
		contract.LogWarn("Status request failed", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEnvelope(w, status)
}

func (s *Server) historyStore() contract.HistoryStore {
	if s.manager == nil {
		return nil
	}
	return s.manager.GetHistoryStore()
}

// requestConfig clones the base configuration and applies the query overrides.
// The window end re-anchors to now on every request unless an explicit date is
// supplied, so a long-running server never serves a stale window.
func (s *Server) requestConfig(r *http.Request) (*contract.Config, error) {
	cfg := s.config.Clone()
	q := r.URL.Query()

	if raw := q.Get("repos"); raw != "" {
		repos := schema.ParseList(raw)
		for _, repo := range repos {
			if _, _, ok := schema.SplitRepo(repo); !ok {
				return nil, fmt.Errorf("invalid repository '%s'. Expected owner/name format", repo)
			}
		}
		cfg.Repos = repos
	}
	if raw := q.Get("period"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 || days > contract.MaxPeriodDays {
			return nil, fmt.Errorf("invalid period '%s'. must be 1..%d days", raw, contract.MaxPeriodDays)
		}
		cfg.PeriodDays = days
	}
	if raw := q.Get("weeks"); raw != "" {
		weeks, err := strconv.Atoi(raw)
		if err != nil || weeks < 1 || weeks > contract.MaxTrendWeeks {
			return nil, fmt.Errorf("invalid weeks '%s'. must be 1..%d", raw, contract.MaxTrendWeeks)
		}
		cfg.TrendWeeks = weeks
	}
	if raw := q.Get("detail"); raw != "" {
		detail, err := contract.ParseBoolString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid detail '%s': %w", raw, err)
		}
		cfg.Detail = detail
	}
	if raw := q.Get("from-history"); raw != "" {
		fromHistory, err := contract.ParseBoolString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid from-history '%s': %w", raw, err)
		}
		cfg.FromHistory = fromHistory
	}

	cfg.Date = time.Now().UTC()
	if raw := q.Get("date"); raw != "" {
		date, err := parseDateParam(raw)
		if err != nil {
			return nil, err
		}
		cfg.Date = date
	}
	return cfg, nil
}

// parseDateParam accepts a calendar date or an absolute ISO8601 timestamp.
func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(contract.DateOnlyFormat, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(contract.DateTimeFormat, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date '%s'. Expected YYYY-MM-DD or absolute ISO8601", raw)
}

// writeEnvelope writes the standard success envelope around the payload.
func writeEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "success",
		"data":      data,
		"timestamp": time.Now().UTC(),
	})
}
