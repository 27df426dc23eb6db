// Package mcpserver exposes question generation as an MCP tool so agent
// clients can use the same service the interactive tool does.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jkwon-dev/interviewkit/internal/genclient"
	"github.com/jkwon-dev/interviewkit/internal/interview"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerInstructions contains the MCP server instructions for clients
const ServerInstructions = `interviewkit MCP server

Generates candidate-specific interview questions grouped into three fixed
buckets (transform, tomorrow, together).

## Transport

Streamable HTTP only. Connect via POST /mcp.

## Tools

### generate_questions
Generate interview questions for one category.
Parameters:
- category: "transform", "tomorrow" or "together"
- level: candidate level label (e.g. "junior", "senior")
- jd_text: job description text
- candidate_name: optional candidate name
- count: optional number of questions (default: 5)

Returns a JSON array of {question, intent, category} objects. An empty array
means the upstream produced nothing usable; retry is reasonable.
`

// Config holds the configuration for the MCP server
type Config struct {
	Port         int     `env:"PORT" env-default:"8081" env-description:"HTTP server port"`
	GeminiAPIKey string  `env:"GEMINI_API_KEY" env-default:"" env-description:"Generative API credential"`
	Models       string  `env:"GEN_MODELS" env-default:"gemini-2.5-flash,gemini-2.0-flash,gemini-1.5-flash" env-description:"Comma-separated model identifiers in preference order"`
	Temperature  float64 `env:"GEN_TEMPERATURE" env-default:"0.7" env-description:"Generation temperature in [0,1]"`
	CallTimeout  string  `env:"GEN_TIMEOUT" env-default:"45s" env-description:"Per-call timeout for generation requests"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ModelList splits the configured model catalog, preserving order
func (c Config) ModelList() []string {
	parts := strings.Split(c.Models, ",")
	models := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			models = append(models, p)
		}
	}
	return models
}

// Server encapsulates the MCP server and its dependencies
type Server struct {
	mcpServer *mcp.Server
	service   *interview.Service
	logger    *slog.Logger
	config    Config
}

// NewServer creates a new MCP server with the given configuration
func NewServer(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	timeout, err := time.ParseDuration(cfg.CallTimeout)
	if err != nil || timeout <= 0 {
		timeout = 45 * time.Second
	}

	gen, err := genclient.New(ctx, cfg.GeminiAPIKey, genclient.Config{
		Models:      cfg.ModelList(),
		CallTimeout: timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("generative client init: %w", err)
	}

	s := &Server{
		service: interview.NewService(gen, logger),
		logger:  logger,
		config:  cfg,
	}

	impl := &mcp.Implementation{
		Name:    "interviewkit",
		Version: "1.0.0",
	}
	s.mcpServer = mcp.NewServer(impl, &mcp.ServerOptions{
		Instructions: ServerInstructions,
	})

	questionsTool := NewGenerateQuestionsTool(s.service, cfg).WithLogger(logger)
	s.mcpServer.AddTool(generateQuestionsDefinition, questionsTool.Call)

	return s, nil
}

// ListenAndServe starts the HTTP server and begins handling requests
func (s *Server) ListenAndServe() error {
	httpHandler := mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return s.mcpServer
	}, &mcp.StreamableHTTPOptions{
		JSONResponse: true,
		Logger:       nil,
	})

	mux := http.NewServeMux()
	mux.Handle("/mcp", httpHandler)
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status":"healthy","service":"interviewkit-mcp"}`)
	})

	addr := fmt.Sprintf(":%d", s.config.Port)
	s.logger.Info("starting MCP server",
		"port", s.config.Port,
		"endpoints", []string{"/mcp", "/health/live"},
	)
	return http.ListenAndServe(addr, mux)
}
