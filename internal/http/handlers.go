package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/theme"
)

// pageData is shared by every full page.
type pageData struct {
	Theme theme.Theme
	User  core.User
}

func (s *Server) page(r *http.Request) pageData {
	return pageData{Theme: theme.FromRequest(r), User: userFromContext(r.Context())}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady checks the backend with a short timeout.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.ready(ctx); err != nil {
			s.requestLogger(r).WarnContext(r.Context(), "Readiness check failed", "error", err)
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	traceMetrics := s.tracer.GetMetrics()
	limitMetrics := s.rateLimiter.GetMetrics()
	out := map[string]any{
		"requests": map[string]int64{
			"total":              traceMetrics.TotalRequests,
			"last_response_usec": traceMetrics.LastResponseTime,
		},
		"rate_limit": map[string]int64{
			"rejected": limitMetrics.Rejected,
			"clients":  limitMetrics.ClientCount,
		},
		"security": map[string]int64{
			"suspicious_requests": s.detector.GetMetrics().SuspiciousRequests,
		},
	}
	if s.cacheStats != nil {
		stats := s.cacheStats()
		out["filter_cache"] = map[string]any{
			"entries": stats.Entries,
			"hits":    stats.Hits,
			"misses":  stats.Misses,
		}
	}
	writeJSON(w, r, http.StatusOK, out)
}

// handleIndex sends signed-in users to the dashboard and everyone else to login.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessions.FromRequest(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
