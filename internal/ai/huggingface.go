package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"diet-calculator/pkg/logger"
)

const (
	DefaultHuggingFaceURL = "https://api-inference.huggingface.co"
	defaultHFTimeout      = 30 * time.Second
	maxResponseBytes      = 1 << 20
)

// DefaultHuggingFaceModels are tried in order until one answers.
var DefaultHuggingFaceModels = []string{
	"microsoft/DialoGPT-medium",
	"google/flan-t5-base",
	"facebook/blenderbot-400M-distill",
	"microsoft/DialoGPT-small",
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfOutput struct {
	GeneratedText string `json:"generated_text"`
	Error         string `json:"error"`
}

// HuggingFace calls the hosted inference API, one model at a time.
type HuggingFace struct {
	client  *http.Client
	baseURL string
	token   string
	models  []string
	log     *logger.Logger
}

func NewHuggingFace(token string) *HuggingFace {
	return &HuggingFace{
		client:  &http.Client{Timeout: defaultHFTimeout},
		baseURL: DefaultHuggingFaceURL,
		token:   token,
		models:  append([]string(nil), DefaultHuggingFaceModels...),
		log:     logger.NewNop(),
	}
}

func (h *HuggingFace) WithModels(models ...string) *HuggingFace {
	h.models = append([]string(nil), models...)
	return h
}

func (h *HuggingFace) WithBaseURL(url string) *HuggingFace {
	h.baseURL = strings.TrimRight(url, "/")
	return h
}

func (h *HuggingFace) WithTimeout(d time.Duration) *HuggingFace {
	h.client.Timeout = d
	return h
}

func (h *HuggingFace) WithLogger(log *logger.Logger) *HuggingFace {
	if log != nil {
		h.log = log
	}
	return h
}

// Generate tries each model in order and returns the first non-empty text.
func (h *HuggingFace) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   1000,
			Temperature:    0.8,
			DoSample:       true,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	lastErr := errors.New("no models configured")
	for _, model := range h.models {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := h.call(ctx, model, body)
		if err == nil {
			h.log.Debugw("Inference model answered", "model", model, "chars", len(text))
			return text, nil
		}
		h.log.Warnw("Inference model failed", "model", model, "error", err)
		lastErr = err
	}
	return "", fmt.Errorf("huggingface: %w", lastErr)
}

func (h *HuggingFace) call(ctx context.Context, model string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/models/"+model, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("model %s: %w", model, err)
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")
	// Load cold models instead of answering 503 "loading"
	req.Header.Set("x-wait-for-model", "true")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", model, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("model %s: failed to read response: %w", model, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model %s: status %d: %s", model, resp.StatusCode, snippet(respBytes))
	}

	var out []hfOutput
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("model %s: unexpected response %q: %w", model, snippet(respBytes), err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("model %s: %w", model, ErrNoOutput)
	}
	if out[0].Error != "" {
		return "", fmt.Errorf("model %s: %s", model, out[0].Error)
	}
	text := strings.TrimSpace(out[0].GeneratedText)
	if text == "" {
		return "", fmt.Errorf("model %s: %w", model, ErrNoOutput)
	}
	return text, nil
}

func snippet(b []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
