// Package ai talks to an OpenAI-compatible generation API.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/state244/hub/internal/domain/creative"
	"github.com/state244/hub/internal/infrastructure/config"
	"github.com/state244/hub/internal/infrastructure/telemetry"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	maxResponseSize  = 32 * 1024 * 1024
	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 600
	defaultImageSize = "1024x1024"
)

var (
	// ErrProviderRequest is returned for non-2xx responses
	ErrProviderRequest = errors.New("ai: provider request failed")
	// ErrEmptyResponse is returned when the provider answers without content
	ErrEmptyResponse = errors.New("ai: empty response")
)

// Client implements creative.TextGenerator and creative.ImageGenerator
type Client struct {
	baseURL    string
	apiKey     string
	textModel  string
	imageModel string
	imageSize  string
	maxTokens  int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the configured provider
func NewClient(cfg config.AIConfig, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai: api key is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("ai: base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	size := cfg.ImageSize
	if size == "" {
		size = defaultImageSize
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		imageSize:  size,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// GenerateText calls the chat completions endpoint
func (c *Client) GenerateText(ctx context.Context, system, prompt string) (text string, err error) {
	ctx, span := telemetry.StartSpan(ctx, "ai.GenerateText", attribute.String("ai.model", c.textModel))
	defer func() { telemetry.EndSpan(span, err) }()

	body, err := c.post(ctx, "/chat/completions", map[string]any{
		"model": c.textModel,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": prompt},
		},
		"max_tokens": c.maxTokens,
	})
	if err != nil {
		return "", err
	}

	content := strings.TrimSpace(gjson.GetBytes(body, "choices.0.message.content").String())
	if content == "" {
		return "", ErrEmptyResponse
	}
	if usage := gjson.GetBytes(body, "usage.total_tokens"); usage.Exists() {
		c.logger.Debug("AI text generated",
			zap.String("model", c.textModel),
			zap.Int64("total_tokens", usage.Int()))
	}
	return content, nil
}

// GenerateImage calls the image generation endpoint and decodes the base64 PNG
func (c *Client) GenerateImage(ctx context.Context, prompt string) (result *creative.ImageResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "ai.GenerateImage", attribute.String("ai.model", c.imageModel))
	defer func() { telemetry.EndSpan(span, err) }()

	body, err := c.post(ctx, "/images/generations", map[string]any{
		"model":           c.imageModel,
		"prompt":          prompt,
		"size":            c.imageSize,
		"n":               1,
		"response_format": "b64_json",
	})
	if err != nil {
		return nil, err
	}

	item := gjson.GetBytes(body, "data.0")
	encoded := item.Get("b64_json").String()
	if encoded == "" {
		return nil, ErrEmptyResponse
	}
	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("ai: failed to decode image: %w", err)
	}
	return &creative.ImageResult{
		PNG:           png,
		Model:         c.imageModel,
		RevisedPrompt: item.Get("revised_prompt").String(),
		Size:          c.imageSize,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload map[string]any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ai: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("ai: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("ai: failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.logger.Warn("AI provider returned an error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrProviderRequest, resp.StatusCode, msg)
	}
	return body, nil
}

var (
	_ creative.TextGenerator  = (*Client)(nil)
	_ creative.ImageGenerator = (*Client)(nil)
)
