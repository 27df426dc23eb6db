package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jkwon-dev/interviewkit/internal/export"
	"github.com/jkwon-dev/interviewkit/internal/interview"
	"github.com/jkwon-dev/interviewkit/internal/session"
)

type addNoteRequest struct {
	// Source is "candidate" to promote a generated question by its position,
	// or "manual" for an interviewer-authored entry.
	Source   string `json:"source"`
	Category string `json:"category,omitempty"`
	Index    int    `json:"index,omitempty"`
	Question string `json:"question,omitempty"`
	Memo     string `json:"memo,omitempty"`
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	s.writeJSON(w, http.StatusOK, map[string]any{"notes": sess.Notes()})
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", "body must be JSON")
		return
	}

	switch req.Source {
	case "candidate":
		cat := interview.Category(req.Category)
		if !cat.Valid() {
			s.writeError(w, r, http.StatusBadRequest, "invalid_request", "unknown category: "+req.Category)
			return
		}
		list := sess.Candidates()[cat]
		if req.Index < 0 || req.Index >= len(list) {
			s.writeError(w, r, http.StatusBadRequest, "invalid_request", "candidate index out of range")
			return
		}
		note := sess.Promote(list[req.Index])
		s.writeJSON(w, http.StatusOK, map[string]any{"note": note})

	case "manual":
		if strings.TrimSpace(req.Question) == "" {
			s.writeError(w, r, http.StatusBadRequest, "invalid_request", "question text is required")
			return
		}
		note := sess.AddManualNote(req.Question, req.Memo)
		s.writeJSON(w, http.StatusOK, map[string]any{"note": note})

	default:
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", `source must be "candidate" or "manual"`)
	}
}

type updateNoteRequest struct {
	Question string `json:"question"`
	Memo     string `json:"memo"`
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", "body must be JSON")
		return
	}
	note, err := sess.UpdateNote(r.PathValue("noteID"), req.Question, req.Memo)
	if err != nil {
		if errors.Is(err, session.ErrNoteNotFound) {
			s.writeError(w, r, http.StatusNotFound, "note_not_found", "no such note")
			return
		}
		s.writeError(w, r, http.StatusInternalServerError, "note_update_failed", "could not update the note")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"note": note})
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := sess.DeleteNote(r.PathValue("noteID")); err != nil {
		s.writeError(w, r, http.StatusNotFound, "note_not_found", "no such note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetNotes(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	sess.ResetNotes()
	w.WriteHeader(http.StatusNoContent)
}

// handleExport streams the transcript as a download and, when an archive
// store is configured, keeps a server-side copy. Archive failures never
// block the download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	name, level := sess.CandidateInfo()
	transcript := export.Transcript(export.Meta{
		CandidateName: name,
		Level:         level,
		Interviewer:   sess.Interviewer,
	}, sess.Notes())

	if s.exports != nil {
		if _, err := s.exports.Archive(sess.ID, transcript); err != nil {
			s.logger.WarnContext(r.Context(), "export archive failed",
				"session_id", sess.ID,
				"error", err,
			)
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="interview-notes.txt"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(transcript); err != nil {
		s.logger.Debug("error writing export", "error", err)
	}
}
