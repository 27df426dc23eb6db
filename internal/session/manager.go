package session

import (
	"io"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Manager tracks live sessions in a bounded LRU. Sessions fall out when the
// capacity is reached or when explicitly removed; there is no expiry beyond
// that, matching the page-scoped lifetime of the tool.
type Manager struct {
	cache  *lru.Cache[string, *Session]
	logger *slog.Logger
}

func NewManager(capacity int, logger *slog.Logger) (*Manager, error) {
	if capacity <= 0 {
		capacity = 256
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Manager{logger: logger}
	cache, err := lru.NewWithEvict(capacity, func(id string, s *Session) {
		if err := s.Close(); err != nil {
			m.logger.Debug("error closing evicted session",
				"session_id", id,
				"error", err,
			)
		}
	})
	if err != nil {
		return nil, err
	}
	m.cache = cache
	return m, nil
}

// Create opens a fresh session for an authenticated interviewer
func (m *Manager) Create(interviewer string) (*Session, error) {
	s, err := newSession(interviewer)
	if err != nil {
		return nil, err
	}
	m.cache.Add(s.ID, s)
	m.logger.Info("session created",
		"session_id", s.ID,
		"interviewer", interviewer,
	)
	return s, nil
}

// Get looks up a session by id
func (m *Manager) Get(id string) (*Session, bool) {
	return m.cache.Get(id)
}

// Remove destroys a session and its state
func (m *Manager) Remove(id string) {
	m.cache.Remove(id)
}

// Len reports how many sessions are live
func (m *Manager) Len() int {
	return m.cache.Len()
}
