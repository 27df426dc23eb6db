package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jkwon-dev/interviewkit/internal/interview"
	"github.com/jkwon-dev/interviewkit/internal/questionbank"
)

// ErrNoteNotFound indicates the referenced note does not exist in the session
var ErrNoteNotFound = errors.New("note not found")

// ManualCategory labels notes the interviewer authored by hand
const ManualCategory = "Custom"

// CuratedNote is an interviewer-selected or manually authored question paired
// with free-text evaluation notes, destined for export. It is fully decoupled
// from the candidate it may have been promoted from.
type CuratedNote struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Category string `json:"category"`
	Memo     string `json:"memo"`
}

// Session is the scratchpad state for one interviewer. All curation state
// lives here and nowhere else; it is destroyed on eviction and never
// persisted beyond an exported transcript.
type Session struct {
	ID          string
	Interviewer string

	mu            sync.Mutex
	candidateName string
	level         string
	inputs        interview.GenerateRequest
	hasInputs     bool
	candidates    map[interview.Category][]interview.QuestionCandidate
	notes         []CuratedNote
	bank          *questionbank.Index
}

func newSession(interviewer string) (*Session, error) {
	bank, err := questionbank.New()
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:          uuid.NewString(),
		Interviewer: interviewer,
		candidates:  make(map[interview.Category][]interview.QuestionCandidate),
		bank:        bank,
	}, nil
}

// SetCandidateInfo records the candidate metadata shown in the export header
func (s *Session) SetCandidateInfo(name, level string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidateName = name
	s.level = level
}

// SetGenerateInputs retains the last generation inputs so per-category
// refresh and per-item regeneration can re-issue the same request.
func (s *Session) SetGenerateInputs(req interview.GenerateRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs = req
	s.hasInputs = true
}

// GenerateInputs returns the retained inputs, if a generation has run
func (s *Session) GenerateInputs() (interview.GenerateRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputs, s.hasInputs
}

// CandidateInfo returns the recorded candidate name and level
func (s *Session) CandidateInfo() (name, level string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.candidateName, s.level
}

// SetCandidates replaces one category's candidate list wholesale and feeds
// the new candidates into the session's search index.
func (s *Session) SetCandidates(cat interview.Category, candidates []interview.QuestionCandidate) error {
	s.mu.Lock()
	s.candidates[cat] = candidates
	s.mu.Unlock()
	return s.indexCandidates(candidates)
}

// ReplaceCandidate swaps a single candidate in place, for per-item
// regeneration.
func (s *Session) ReplaceCandidate(cat interview.Category, index int, c interview.QuestionCandidate) error {
	s.mu.Lock()
	list := s.candidates[cat]
	if index < 0 || index >= len(list) {
		s.mu.Unlock()
		return errors.New("candidate index out of range")
	}
	list[index] = c
	s.mu.Unlock()
	return s.indexCandidates([]interview.QuestionCandidate{c})
}

func (s *Session) indexCandidates(candidates []interview.QuestionCandidate) error {
	entries := make([]questionbank.Entry, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, questionbank.Entry{
			Question: c.Question,
			Intent:   c.Intent,
			Category: string(c.Category),
		})
	}
	return s.bank.Add(entries...)
}

// Candidates returns a copy of the current candidate lists
func (s *Session) Candidates() map[interview.Category][]interview.QuestionCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[interview.Category][]interview.QuestionCandidate, len(s.candidates))
	for cat, list := range s.candidates {
		out[cat] = append([]interview.QuestionCandidate(nil), list...)
	}
	return out
}

// Search queries the session's question index
func (s *Session) Search(q string, limit int) ([]questionbank.Entry, error) {
	return s.bank.Search(q, limit)
}

// Promote copies a candidate into the scratchpad. The note owns its strings
// from here on; editing it never touches the candidate lists.
func (s *Session) Promote(c interview.QuestionCandidate) CuratedNote {
	note := CuratedNote{
		ID:       uuid.NewString(),
		Question: c.Question,
		Category: c.Category.Label(),
	}
	s.mu.Lock()
	s.notes = append(s.notes, note)
	s.mu.Unlock()
	return note
}

// AddManualNote inserts an interviewer-authored note
func (s *Session) AddManualNote(question, memo string) CuratedNote {
	note := CuratedNote{
		ID:       uuid.NewString(),
		Question: question,
		Category: ManualCategory,
		Memo:     memo,
	}
	s.mu.Lock()
	s.notes = append(s.notes, note)
	s.mu.Unlock()
	return note
}

// UpdateNote edits a note's question text and memo
func (s *Session) UpdateNote(id, question, memo string) (CuratedNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID != id {
			continue
		}
		s.notes[i].Question = question
		s.notes[i].Memo = memo
		return s.notes[i], nil
	}
	return CuratedNote{}, ErrNoteNotFound
}

// DeleteNote removes a note from the scratchpad
func (s *Session) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID != id {
			continue
		}
		s.notes = append(s.notes[:i], s.notes[i+1:]...)
		return nil
	}
	return ErrNoteNotFound
}

// Notes returns a copy of the scratchpad in insertion order
func (s *Session) Notes() []CuratedNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CuratedNote, 0, len(s.notes))
	return append(out, s.notes...)
}

// ResetNotes clears the scratchpad
func (s *Session) ResetNotes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = nil
}

// Close releases session resources
func (s *Session) Close() error {
	return s.bank.Close()
}
