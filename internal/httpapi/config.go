package httpapi

import (
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the configuration for the HTTP API server
type Config struct {
	Port          int     `env:"PORT" env-default:"8080" env-description:"HTTP server port"`
	GeminiAPIKey  string  `env:"GEMINI_API_KEY" env-default:"" env-description:"Generative API credential"`
	Models        string  `env:"GEN_MODELS" env-default:"gemini-2.5-flash,gemini-2.0-flash,gemini-1.5-flash" env-description:"Comma-separated model identifiers in preference order"`
	Temperature   float64 `env:"GEN_TEMPERATURE" env-default:"0.7" env-description:"Generation temperature in [0,1]"`
	CallTimeout   string  `env:"GEN_TIMEOUT" env-default:"45s" env-description:"Per-call timeout for generation requests"`
	QuestionCount int     `env:"QUESTION_COUNT" env-default:"5" env-description:"Questions generated per category"`
	AccessListURL string  `env:"ACCESS_LIST_URL" env-default:"" env-description:"Published CSV of access codes; empty disables the gate"`
	ExportDir     string  `env:"EXPORT_DIR" env-default:"" env-description:"Directory for archived exports; empty disables archiving"`
	SessionCap    int     `env:"SESSION_CAP" env-default:"256" env-description:"Maximum live sessions before LRU eviction"`
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

// Timeout parses CallTimeout, falling back to 45s on malformed input
func (c Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.CallTimeout)
	if err != nil || d <= 0 {
		return 45 * time.Second
	}
	return d
}
