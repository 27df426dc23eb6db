package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jkwon-dev/interviewkit/internal/authgate"
	"github.com/jkwon-dev/interviewkit/internal/genclient"
	"github.com/jkwon-dev/interviewkit/internal/interview"
	"github.com/jkwon-dev/interviewkit/internal/resume"
	"github.com/jkwon-dev/interviewkit/internal/session"
)

const maxUploadSize = resume.MaxSize + 1<<20

type loginRequest struct {
	Code string `json:"code"`
}

type loginResponse struct {
	SessionID   string `json:"session_id"`
	DisplayName string `json:"display_name"`
}

// handleLogin validates the access code and opens a session. With no access
// list configured the gate is open, as in ungated deployments.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	displayName := "Interviewer"

	if s.gate != nil {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, http.StatusBadRequest, "invalid_request", "body must be JSON with a code field")
			return
		}
		name, err := s.gate.Authenticate(r.Context(), req.Code)
		if err != nil {
			var listErr *authgate.ListError
			if errors.As(err, &listErr) {
				s.writeError(w, r, http.StatusBadGateway, "access_list_unreachable", "could not load the access list; try again shortly")
				return
			}
			s.writeError(w, r, http.StatusUnauthorized, "invalid_code", "access code not recognized")
			return
		}
		displayName = name
	}

	sess, err := s.sessions.Create(displayName)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "session_init_failed", "could not create a session")
		return
	}
	s.writeJSON(w, http.StatusOK, loginResponse{SessionID: sess.ID, DisplayName: displayName})
}

type candidatesResponse struct {
	Candidates map[interview.Category][]interview.QuestionCandidate `json:"candidates"`
	Retryable  bool                                                 `json:"retryable,omitempty"`
	Warning    string                                               `json:"warning,omitempty"`
	Fallback   string                                               `json:"fallback,omitempty"`
}

// handleGenerate runs a full generation from the multipart form: candidate
// metadata, JD by URL or paste, and the resume file.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", "expected a multipart form")
		return
	}

	resumeData, declaredMIME, err := readUpload(r, "resume")
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid_resume", "a resume file (PDF, PNG or JPEG) is required")
		return
	}
	mimeType, err := resume.Validate(resumeData, declaredMIME)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid_resume", err.Error())
		return
	}

	jdText := strings.TrimSpace(r.FormValue("jd_text"))
	jdURL := strings.TrimSpace(r.FormValue("jd_url"))

	var jdFetched, warning, fallback string
	// Pasted text wins outright; the URL is not even fetched then.
	if jdText == "" && jdURL != "" {
		jdFetched, err = s.fetcher.Fetch(r.Context(), jdURL)
		if err != nil {
			// A dead URL never blocks generation; the questions lean on
			// the resume alone and the UI offers the paste box.
			s.logger.WarnContext(r.Context(), "job description fetch failed",
				"url", jdURL,
				"error", err,
			)
			jdFetched = ""
			warning = "could not read the job description from that URL; questions were generated without it"
			fallback = "manual_paste"
		}
	}

	req := interview.GenerateRequest{
		CandidateName: strings.TrimSpace(r.FormValue("candidate_name")),
		Level:         strings.TrimSpace(r.FormValue("level")),
		JDText:        jdText,
		JDFetched:     jdFetched,
		Resume:        resumeData,
		ResumeMIME:    mimeType,
		Count:         s.cfg.QuestionCount,
		Temperature:   float32(s.cfg.Temperature),
	}

	sess.SetCandidateInfo(req.CandidateName, req.Level)
	sess.SetGenerateInputs(req)

	result, err := s.service.Generate(r.Context(), req)
	if err != nil {
		s.writeGenerationError(w, r, err)
		return
	}

	retryable := false
	for cat, list := range result {
		if err := sess.SetCandidates(cat, list); err != nil {
			s.logger.WarnContext(r.Context(), "failed to index candidates", "error", err)
		}
		if len(list) == 0 {
			retryable = true
		}
	}

	s.writeJSON(w, http.StatusOK, candidatesResponse{
		Candidates: result,
		Retryable:  retryable,
		Warning:    warning,
		Fallback:   fallback,
	})
}

// handleCandidates returns the session's current candidate lists
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	s.writeJSON(w, http.StatusOK, candidatesResponse{Candidates: sess.Candidates()})
}

// handleRefresh regenerates one category from the retained inputs
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	cat, ok := s.categoryParam(w, r)
	if !ok {
		return
	}
	inputs, ok := sess.GenerateInputs()
	if !ok {
		s.writeError(w, r, http.StatusConflict, "no_generation_yet", "run a full generation before refreshing a category")
		return
	}

	list, err := s.service.RefreshCategory(r.Context(), inputs, cat)
	if err != nil {
		s.writeGenerationError(w, r, err)
		return
	}
	if err := sess.SetCandidates(cat, list); err != nil {
		s.logger.WarnContext(r.Context(), "failed to index candidates", "error", err)
	}

	s.writeJSON(w, http.StatusOK, candidatesResponse{
		Candidates: map[interview.Category][]interview.QuestionCandidate{cat: list},
		Retryable:  len(list) == 0,
	})
}

type regenerateRequest struct {
	Index int `json:"index"`
}

// handleRegenerate replaces a single candidate in place
func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	cat, ok := s.categoryParam(w, r)
	if !ok {
		return
	}
	var req regenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", "body must be JSON with an index field")
		return
	}
	inputs, ok := sess.GenerateInputs()
	if !ok {
		s.writeError(w, r, http.StatusConflict, "no_generation_yet", "run a full generation before regenerating an item")
		return
	}

	item, err := s.service.RegenerateItem(r.Context(), inputs, cat)
	if err != nil {
		s.writeGenerationError(w, r, err)
		return
	}
	if item == nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"replaced": false, "retryable": true})
		return
	}
	if err := sess.ReplaceCandidate(cat, req.Index, *item); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"replaced": true, "candidate": item})
}

// handleSearch queries the session's question index
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", "q parameter is required")
		return
	}
	entries, err := sess.Search(q, 20)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "search_failed", "question search failed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"results": entries})
}

// writeGenerationError maps service errors onto the API contract: a missing
// credential is a distinct config error, anything else is a server fault.
// Transient upstream exhaustion never reaches here; it comes back as an
// empty candidate list.
func (s *Server) writeGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, genclient.ErrMissingAPIKey) {
		s.writeError(w, r, http.StatusServiceUnavailable, "missing_api_key", "the generative API credential is not configured")
		return
	}
	s.writeError(w, r, http.StatusInternalServerError, "generation_failed", "question generation failed")
}

func (s *Server) categoryParam(w http.ResponseWriter, r *http.Request) (interview.Category, bool) {
	cat := interview.Category(r.PathValue("cat"))
	if !cat.Valid() {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", "unknown category: "+string(cat))
		return "", false
	}
	return cat, true
}

func readUpload(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		return nil, "", err
	}
	return data, header.Header.Get("Content-Type"), nil
}
