package httpapi

import (
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for health endpoints
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// handleLive reports that the server is running; no dependencies involved
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "interviewkit",
	})
}

// handleReady reports whether the server can actually generate questions.
// A missing credential makes the instance not-ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := http.StatusOK
	overall := "healthy"

	if s.hasKey {
		checks["generator"] = "configured"
	} else {
		checks["generator"] = "missing_api_key"
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	}
	if s.gate != nil {
		checks["access_gate"] = "enabled"
	} else {
		checks["access_gate"] = "open"
	}

	s.writeJSON(w, status, HealthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "interviewkit",
		Checks:    checks,
	})
}

// handleIndex describes the API surface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"service": "interviewkit",
		"endpoints": []string{
			"POST /api/login",
			"POST /api/sessions/{id}/generate",
			"GET /api/sessions/{id}/candidates",
			"POST /api/sessions/{id}/categories/{cat}/refresh",
			"POST /api/sessions/{id}/categories/{cat}/regenerate",
			"GET /api/sessions/{id}/search",
			"GET /api/sessions/{id}/notes",
			"POST /api/sessions/{id}/notes",
			"PATCH /api/sessions/{id}/notes/{noteID}",
			"DELETE /api/sessions/{id}/notes/{noteID}",
			"GET /api/sessions/{id}/export",
			"GET /health/live",
			"GET /health/ready",
		},
	})
}
