package genclient

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Item is one structured entry extracted from the model output
type Item struct {
	Question string `json:"question"`
	Intent   string `json:"intent"`
}

// Request describes one structured-completion call. The attachment is passed
// to the backend inline with its declared media type.
type Request struct {
	Instruction string
	Attachment  []byte
	MIMEType    string
	Count       int
	Temperature float32
}

// Config holds the model catalog and call policy. Models is an ordered
// preference list; deployments adjust it as the upstream catalog evolves.
type Config struct {
	Models      []string
	Retry       RetryConfig
	CallTimeout time.Duration
}

// backend issues a single raw call against one model identifier
type backend interface {
	generate(ctx context.Context, model string, req Request) (string, error)
}

// Client obtains structured question/intent items from a generative backend,
// tolerating transient upstream failure and inconsistent output formatting.
// It holds no mutable state; every call is an independent request/response.
type Client struct {
	backend backend
	cfg     Config
	logger  *slog.Logger
}

// New builds a Client backed by the Gemini API. A missing API key is not an
// error here: the client is still constructed and every Generate call reports
// ErrMissingAPIKey, keeping the condition distinguishable at request time.
func New(ctx context.Context, apiKey string, cfg Config, logger *slog.Logger) (*Client, error) {
	c := newClient(cfg, logger)
	if apiKey == "" {
		return c, nil
	}
	b, err := newGeminiBackend(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	c.backend = b
	return c, nil
}

func newClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryConfig
	}
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{cfg: cfg, logger: logger}
}

// Generate returns the items the model produced, in upstream order, capped
// at req.Count when Count is positive (models overshoot the requested count).
//
// Failure contract: ErrMissingAPIKey before any network call when no
// credential is configured; otherwise failures degrade to an empty slice and
// a nil error. An unrecognized model identifier falls through to the next one
// in the catalog; transient failures retry the same request within the
// configured budget.
func (c *Client) Generate(ctx context.Context, req Request) ([]Item, error) {
	if c.backend == nil {
		return nil, ErrMissingAPIKey
	}

	for _, model := range c.cfg.Models {
		text, err := c.callWithRetry(ctx, model, req)
		if err == nil {
			items := ParseItems(text)
			if req.Count > 0 && len(items) > req.Count {
				items = items[:req.Count]
			}
			return items, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if IsUnknownModel(err) {
			c.logger.WarnContext(ctx, "model not recognized, falling through",
				"model", model,
				"error", err,
			)
			continue
		}
		c.logger.WarnContext(ctx, "generation failed, returning empty result",
			"model", model,
			"error", err,
		)
		return nil, nil
	}

	c.logger.WarnContext(ctx, "model catalog exhausted, returning empty result",
		"models", c.cfg.Models,
	)
	return nil, nil
}

func (c *Client) callWithRetry(ctx context.Context, model string, req Request) (string, error) {
	var out string
	err := Retry(ctx, c.cfg.Retry, func(attempt int) error {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
		defer cancel()

		text, err := c.backend.generate(callCtx, model, req)
		if err != nil {
			c.logger.DebugContext(ctx, "generation attempt failed",
				"model", model,
				"attempt", attempt,
				"error", err,
			)
			return err
		}
		out = text
		return nil
	})
	return out, err
}
