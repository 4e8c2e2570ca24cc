// Package ai talks to external text-generation services.
package ai

import (
	"context"
	"errors"
	"strings"

	"diet-calculator/config"
	"diet-calculator/pkg/logger"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
)

// ErrNoOutput is returned when a service answers without any generated text.
var ErrNoOutput = errors.New("no generated text")

// Generator turns a prompt into free text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator builds the configured client. It returns nil when no API key
// is set, which callers treat as "AI disabled".
func NewGenerator(cfg config.AIConfig, log *logger.Logger) Generator {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		c := NewOpenAI(cfg.APIKey).WithLogger(log)
		if cfg.BaseURL != "" {
			c = c.WithBaseURL(cfg.BaseURL)
		}
		if len(cfg.Models) > 0 {
			c = c.WithModels(cfg.Models...)
		}
		if cfg.Timeout > 0 {
			c = c.WithTimeout(cfg.Timeout)
		}
		return c
	default:
		c := NewHuggingFace(cfg.APIKey).WithLogger(log)
		if cfg.BaseURL != "" {
			c = c.WithBaseURL(cfg.BaseURL)
		}
		if len(cfg.Models) > 0 {
			c = c.WithModels(cfg.Models...)
		}
		if cfg.Timeout > 0 {
			c = c.WithTimeout(cfg.Timeout)
		}
		return c
	}
}
