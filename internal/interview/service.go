package interview

import (
	"context"
	"io"
	"log/slog"

	"github.com/jkwon-dev/interviewkit/internal/genclient"
)

// Generator produces structured items for one instruction. Satisfied by
// *genclient.Client; tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, req genclient.Request) ([]genclient.Item, error)
}

// Service orchestrates question generation across the fixed categories.
// Calls are sequential on the request path; one user action maps to at most
// one in-flight upstream request at a time.
type Service struct {
	gen    Generator
	logger *slog.Logger
}

func NewService(gen Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{gen: gen, logger: logger}
}

// Generate produces candidates for every category. A category that fails
// transiently comes back empty; the caller offers a per-category refresh.
// Configuration errors (missing credential) abort the whole run.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (map[Category][]QuestionCandidate, error) {
	out := make(map[Category][]QuestionCandidate, len(Categories()))
	for _, cat := range Categories() {
		candidates, err := s.generateCategory(ctx, req, cat)
		if err != nil {
			return nil, err
		}
		out[cat] = candidates
	}
	return out, nil
}

// RefreshCategory regenerates one category wholesale
func (s *Service) RefreshCategory(ctx context.Context, req GenerateRequest, cat Category) ([]QuestionCandidate, error) {
	return s.generateCategory(ctx, req, cat)
}

// RegenerateItem produces a single replacement question for a category.
// Returns nil when the upstream produced nothing usable.
func (s *Service) RegenerateItem(ctx context.Context, req GenerateRequest, cat Category) (*QuestionCandidate, error) {
	req.Count = 1
	candidates, err := s.generateCategory(ctx, req, cat)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return &candidates[0], nil
}

func (s *Service) generateCategory(ctx context.Context, req GenerateRequest, cat Category) ([]QuestionCandidate, error) {
	items, err := s.gen.Generate(ctx, genclient.Request{
		Instruction: BuildInstruction(cat, req),
		Attachment:  req.Resume,
		MIMEType:    req.ResumeMIME,
		Count:       itemCount(req.Count),
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]QuestionCandidate, 0, len(items))
	for _, it := range items {
		candidates = append(candidates, QuestionCandidate{
			Question: it.Question,
			Intent:   it.Intent,
			Category: cat,
		})
	}

	s.logger.DebugContext(ctx, "category generated",
		"category", cat,
		"count", len(candidates),
	)
	return candidates, nil
}
