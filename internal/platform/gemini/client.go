// Package gemini talks to the Gemini API through its OpenAI-compatible
// endpoint.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"pregnancy-tracker/internal/config"
)

const requestTimeout = 30 * time.Second

// Placeholder keys from .env templates must not enable the AI path.
const minKeyLength = 10

type Client struct {
	client openaigo.Client
	model  string
}

// NewClient returns nil when no usable API key is configured. Callers treat a
// nil client as "AI disabled" and run their deterministic paths.
func NewClient(cfg config.GeminiConfig) *Client {
	key := strings.TrimSpace(cfg.APIKey)
	if len(key) < minKeyLength || strings.Contains(key, "your_gemini_api_key") {
		return nil
	}

	client := openaigo.NewClient(
		option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
		option.WithAPIKey(key),
		option.WithHTTPClient(&http.Client{Timeout: requestTimeout}),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(requestTimeout),
	)
	return &Client{client: client, model: cfg.Model}
}

// Generate runs a single chat completion for the given prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(c.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("gemini returned no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty completion")
	}
	return text, nil
}
