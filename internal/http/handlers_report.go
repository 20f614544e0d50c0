package http

import (
	"log/slog"
	"net/http"
	"regexp"
	"time"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.service.ListCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List categories error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	respondJSON(w, http.StatusOK, cats)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	cat, found, err := s.service.GetCategory(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Get category error", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to get category")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	respondJSON(w, http.StatusOK, cat)
}

const dashboardCacheKey = "dashboard"

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if stats, found := s.dashboardCache.Get(dashboardCacheKey); found {
		slog.DebugContext(r.Context(), "Dashboard cache hit")
		respondJSON(w, http.StatusOK, stats)
		return
	}

	stats, err := s.service.Dashboard(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to compute dashboard")
		return
	}

	s.dashboardCache.Set(dashboardCacheKey, stats)
	respondJSON(w, http.StatusOK, stats)
}

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// handleMonthlyReport aggregates one month of transactions. The month query
// parameter is "yyyy-mm" and defaults to the current month.
func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if !monthPattern.MatchString(month) {
		respondError(w, http.StatusBadRequest, "invalid month, expected yyyy-mm")
		return
	}

	if sum, found := s.reportCache.Get(month); found {
		slog.DebugContext(r.Context(), "Monthly report cache hit", "month", month)
		respondJSON(w, http.StatusOK, sum)
		return
	}

	sum, err := s.service.MonthlySummary(r.Context(), month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly report error", "error", err, "month", month)
		respondError(w, http.StatusInternalServerError, "failed to compute monthly report")
		return
	}

	s.reportCache.Set(month, sum)
	respondJSON(w, http.StatusOK, sum)
}
