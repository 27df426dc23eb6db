// Package httpapi is the JSON API behind the single-page interviewer tool.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jkwon-dev/interviewkit/internal/authgate"
	"github.com/jkwon-dev/interviewkit/internal/export"
	"github.com/jkwon-dev/interviewkit/internal/genclient"
	"github.com/jkwon-dev/interviewkit/internal/interview"
	"github.com/jkwon-dev/interviewkit/internal/jobdesc"
	"github.com/jkwon-dev/interviewkit/internal/session"
)

// Server wires the interview service, session state, access gate and export
// store behind HTTP handlers.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	service  *interview.Service
	sessions *session.Manager
	fetcher  *jobdesc.Fetcher
	gate     *authgate.Gate
	exports  *export.Store
	hasKey   bool
}

// NewServer builds a Server and all its collaborators from configuration
func NewServer(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	gen, err := genclient.New(ctx, cfg.GeminiAPIKey, genclient.Config{
		Models:      cfg.ModelList(),
		CallTimeout: cfg.Timeout(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("generative client init: %w", err)
	}

	sessions, err := session.NewManager(cfg.SessionCap, logger)
	if err != nil {
		return nil, fmt.Errorf("session manager init: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		service:  interview.NewService(gen, logger),
		sessions: sessions,
		fetcher:  jobdesc.NewFetcher(logger),
		hasKey:   cfg.GeminiAPIKey != "",
	}
	if cfg.AccessListURL != "" {
		s.gate = authgate.New(cfg.AccessListURL, logger)
	}
	if cfg.ExportDir != "" {
		s.exports = export.NewStore(cfg.ExportDir, logger)
	}
	return s, nil
}

// Handler returns the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/sessions/{id}/generate", s.withSession(s.handleGenerate))
	mux.HandleFunc("GET /api/sessions/{id}/candidates", s.withSession(s.handleCandidates))
	mux.HandleFunc("POST /api/sessions/{id}/categories/{cat}/refresh", s.withSession(s.handleRefresh))
	mux.HandleFunc("POST /api/sessions/{id}/categories/{cat}/regenerate", s.withSession(s.handleRegenerate))
	mux.HandleFunc("GET /api/sessions/{id}/search", s.withSession(s.handleSearch))
	mux.HandleFunc("GET /api/sessions/{id}/notes", s.withSession(s.handleListNotes))
	mux.HandleFunc("POST /api/sessions/{id}/notes", s.withSession(s.handleAddNote))
	mux.HandleFunc("PATCH /api/sessions/{id}/notes/{noteID}", s.withSession(s.handleUpdateNote))
	mux.HandleFunc("DELETE /api/sessions/{id}/notes/{noteID}", s.withSession(s.handleDeleteNote))
	mux.HandleFunc("DELETE /api/sessions/{id}/notes", s.withSession(s.handleResetNotes))
	mux.HandleFunc("GET /api/sessions/{id}/export", s.withSession(s.handleExport))

	mux.HandleFunc("GET /health/live", s.handleLive)
	mux.HandleFunc("GET /health/ready", s.handleReady)
	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *session.Session)

// withSession resolves the {id} path segment to a live session
func (s *Server) withSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		sess, ok := s.sessions.Get(id)
		if !ok {
			s.writeError(w, r, http.StatusNotFound, "session_not_found", "session expired or unknown; log in again")
			return
		}
		next(w, r, sess)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("error encoding response", "error", err)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	s.logger.DebugContext(r.Context(), "request failed",
		"path", r.URL.Path,
		"status", status,
		"code", code,
	)
	s.writeJSON(w, status, errorResponse{Error: code, Message: message})
}
