package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkwon-dev/interviewkit/internal/genclient"
	"github.com/jkwon-dev/interviewkit/internal/interview"
)

type fakeGenerator struct {
	requests []genclient.Request
	respond  func(req genclient.Request) ([]genclient.Item, error)
}

func (f *fakeGenerator) Generate(_ context.Context, req genclient.Request) ([]genclient.Item, error) {
	f.requests = append(f.requests, req)
	return f.respond(req)
}

func callRequest(args string) *mcp.CallToolRequest {
	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Arguments: json.RawMessage(args),
		},
	}
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestGenerateQuestionsTool_Call(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(req genclient.Request) ([]genclient.Item, error) {
			return []genclient.Item{
				{Question: "What would you change about our stack?", Intent: "change drive"},
				{Question: "Describe a process you replaced", Intent: "initiative"},
			}, nil
		},
	}
	tool := NewGenerateQuestionsTool(interview.NewService(gen, nil), Config{Temperature: 0.7})

	result, err := tool.Call(context.Background(), callRequest(
		`{"category":"transform","jd_text":"Backend engineer","level":"senior","count":2}`))
	require.NoError(t, err)

	var candidates []interview.QuestionCandidate
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &candidates))
	require.Len(t, candidates, 2)
	assert.Equal(t, interview.CategoryTransform, candidates[0].Category)
	assert.Equal(t, "What would you change about our stack?", candidates[0].Question)

	require.Len(t, gen.requests, 1)
	assert.Equal(t, 2, gen.requests[0].Count)
	assert.Contains(t, gen.requests[0].Instruction, "Backend engineer")
}

func TestGenerateQuestionsTool_InvalidCategory(t *testing.T) {
	tool := NewGenerateQuestionsTool(interview.NewService(&fakeGenerator{}, nil), Config{})

	result, err := tool.Call(context.Background(), callRequest(
		`{"category":"vibes","jd_text":"Backend engineer"}`))
	require.Error(t, err)
	assert.Contains(t, textContent(t, result), "unknown category")
}

func TestGenerateQuestionsTool_MissingJDText(t *testing.T) {
	tool := NewGenerateQuestionsTool(interview.NewService(&fakeGenerator{}, nil), Config{})

	result, err := tool.Call(context.Background(), callRequest(`{"category":"tomorrow"}`))
	require.Error(t, err)
	assert.Contains(t, textContent(t, result), "jd_text")
}

func TestGenerateQuestionsTool_DefaultCount(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(req genclient.Request) ([]genclient.Item, error) {
			return nil, nil
		},
	}
	tool := NewGenerateQuestionsTool(interview.NewService(gen, nil), Config{})

	_, err := tool.Call(context.Background(), callRequest(
		`{"category":"together","jd_text":"Backend engineer"}`))
	require.NoError(t, err)
	require.Len(t, gen.requests, 1)
	assert.Equal(t, 5, gen.requests[0].Count)
}

func TestGenerateQuestionsTool_MissingCredential(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(req genclient.Request) ([]genclient.Item, error) {
			return nil, genclient.ErrMissingAPIKey
		},
	}
	tool := NewGenerateQuestionsTool(interview.NewService(gen, nil), Config{})

	result, err := tool.Call(context.Background(), callRequest(
		`{"category":"transform","jd_text":"Backend engineer"}`))
	require.ErrorIs(t, err, genclient.ErrMissingAPIKey)
	assert.Contains(t, textContent(t, result), "credential")
}

func TestGenerateQuestionsTool_MalformedArguments(t *testing.T) {
	tool := NewGenerateQuestionsTool(interview.NewService(&fakeGenerator{}, nil), Config{})

	_, err := tool.Call(context.Background(), callRequest(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input format")
}
