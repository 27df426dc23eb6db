package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jkwon-dev/interviewkit/internal/genclient"
	"github.com/jkwon-dev/interviewkit/internal/interview"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var generateQuestionsDefinition = &mcp.Tool{
	Name:        "generate_questions",
	Description: "Generate candidate-specific interview questions for one evaluation category from a job description and candidate level. Returns a JSON array of {question, intent, category} objects.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"category": map[string]interface{}{
				"type":        "string",
				"description": "Evaluation bucket",
				"enum":        []string{"transform", "tomorrow", "together"},
			},
			"level": map[string]interface{}{
				"type":        "string",
				"description": "Candidate level label (e.g. 'junior', 'senior')",
			},
			"jd_text": map[string]interface{}{
				"type":        "string",
				"description": "Job description text",
			},
			"candidate_name": map[string]interface{}{
				"type":        "string",
				"description": "Optional candidate name",
			},
			"count": map[string]interface{}{
				"type":        "integer",
				"description": "Number of questions (default: 5)",
			},
		},
		"required": []string{"category", "jd_text"},
	},
}

// GenerateQuestionsTool adapts the interview service to the MCP tool surface
type GenerateQuestionsTool struct {
	service *interview.Service
	config  Config
	logger  *slog.Logger
}

func NewGenerateQuestionsTool(service *interview.Service, cfg Config) *GenerateQuestionsTool {
	return &GenerateQuestionsTool{
		service: service,
		config:  cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the logger
func (t *GenerateQuestionsTool) WithLogger(logger *slog.Logger) *GenerateQuestionsTool {
	if logger != nil {
		t.logger = logger
	}
	return t
}

// Call implements the MCP tool interface
func (t *GenerateQuestionsTool) Call(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Category      string `json:"category"`
		Level         string `json:"level"`
		JDText        string `json:"jd_text"`
		CandidateName string `json:"candidate_name"`
		Count         int    `json:"count"`
	}
	if err := json.Unmarshal(request.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("invalid input format: %w", err)
	}

	cat := interview.Category(args.Category)
	if !cat.Valid() {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Error: unknown category '%s'. Must be 'transform', 'tomorrow' or 'together'", args.Category)},
			},
		}, fmt.Errorf("invalid category")
	}
	if args.JDText == "" {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: "Error: jd_text parameter is required"},
			},
		}, fmt.Errorf("jd_text is required")
	}
	if args.Count <= 0 {
		args.Count = 5
	}

	candidates, err := t.service.RefreshCategory(ctx, interview.GenerateRequest{
		CandidateName: args.CandidateName,
		Level:         args.Level,
		JDText:        args.JDText,
		Count:         args.Count,
		Temperature:   float32(t.config.Temperature),
	}, cat)
	if err != nil {
		if errors.Is(err, genclient.ErrMissingAPIKey) {
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{Text: "Error: the generative API credential is not configured on this server"},
				},
			}, err
		}
		return nil, err
	}

	payload, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	t.logger.DebugContext(ctx, "questions generated via MCP",
		"category", cat,
		"count", len(candidates),
	)
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(payload)},
		},
	}, nil
}
