package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"diet-calculator/pkg/logger"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a certified nutritionist and meal planning expert. Give specific, practical, evidence-based advice."

// OpenAI generates text through the chat completion API.
type OpenAI struct {
	client *openai.Client
	config openai.ClientConfig
	models []string
	log    *logger.Logger
}

func NewOpenAI(apiKey string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		config: cfg,
		models: []string{openai.GPT4},
		log:    logger.NewNop(),
	}
}

func (c *OpenAI) WithModels(models ...string) *OpenAI {
	c.models = append([]string(nil), models...)
	return c
}

// WithBaseURL points the client at a compatible endpoint, e.g. "http://host/v1".
func (c *OpenAI) WithBaseURL(url string) *OpenAI {
	c.config.BaseURL = strings.TrimRight(url, "/")
	c.client = openai.NewClientWithConfig(c.config)
	return c
}

// WithTimeout bounds every API request, including reading the response.
func (c *OpenAI) WithTimeout(d time.Duration) *OpenAI {
	c.config.HTTPClient = &http.Client{Timeout: d}
	c.client = openai.NewClientWithConfig(c.config)
	return c
}

func (c *OpenAI) WithLogger(log *logger.Logger) *OpenAI {
	if log != nil {
		c.log = log
	}
	return c
}

// Generate asks each model in turn and returns the first non-empty answer.
func (c *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	lastErr := errors.New("no models configured")
	for _, model := range c.models {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := c.complete(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		c.log.Warnw("Chat model failed", "model", model, "error", err)
		lastErr = err
	}
	return "", fmt.Errorf("openai: %w", lastErr)
}

func (c *OpenAI) complete(ctx context.Context, model, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   2500,
		Temperature: 0.7,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", model, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model %s: %w", model, ErrNoOutput)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("model %s: %w", model, ErrNoOutput)
	}
	return text, nil
}
