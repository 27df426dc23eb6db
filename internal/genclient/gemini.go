package genclient

import (
	"context"
	"errors"

	genai "google.golang.org/genai"
)

// geminiBackend issues a single GenerateContent call per request. Retry,
// model fallback and output parsing live in Client.
type geminiBackend struct {
	cli *genai.Client
}

func newGeminiBackend(ctx context.Context, apiKey string) (*geminiBackend, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, err
	}
	return &geminiBackend{cli: cli}, nil
}

func (g *geminiBackend) generate(ctx context.Context, model string, req Request) (string, error) {
	parts := []*genai.Part{{Text: req.Instruction}}
	if len(req.Attachment) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: req.MIMEType,
				Data:     req.Attachment,
			},
		})
	}

	resp, err := g.cli.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: parts}},
		&genai.GenerateContentConfig{Temperature: genai.Ptr(req.Temperature)},
	)
	if err != nil {
		return "", classify(model, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// classify maps genai errors onto UpstreamError so the retry and fallback
// policies can act on the HTTP status. Anything without a status code is a
// transport failure and counts as transient.
func classify(model string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Model: model, Status: apiErr.Code, Err: err}
	}
	return &UpstreamError{Model: model, Err: err}
}
