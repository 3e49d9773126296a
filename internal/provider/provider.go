// Package provider adapts third-party text-generation APIs behind a narrow
// completion contract. The default client speaks the OpenAI-compatible chat
// completions protocol, pointed at the Perplexity endpoint.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrProvider wraps any non-success response or malformed envelope from the
// generation endpoint.
var ErrProvider = errors.New("provider request failed")

// Completer issues one completion request and returns the raw text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ChatCompletionService is the slice of the SDK the client depends on.
// This abstraction enables testing without calling the real API.
type ChatCompletionService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Compile-time interface check
var _ Completer = (*Client)(nil)

// Config holds settings for the completion client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client implements Completer over an OpenAI-compatible chat endpoint.
type Client struct {
	chat  ChatCompletionService
	model string
}

// NewClient creates a completion client. The API key must be present;
// a missing key is a configuration error, not something to paper over.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider API key missing")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("provider model is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	return &Client{chat: &client.Chat.Completions, model: cfg.Model}, nil
}

// Complete sends one chat completion request. Sampling parameters are tuned
// for variety: repeated calls within one generation sequence should not
// produce the same quote twice.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature:      openai.Float(0.8),
		TopP:             openai.Float(0.9),
		FrequencyPenalty: openai.Float(1.0),
		PresencePenalty:  openai.Float(1.0),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choice list", ErrProvider)
	}

	return resp.Choices[0].Message.Content, nil
}
