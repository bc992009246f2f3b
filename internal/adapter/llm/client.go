// Package llm wraps the OpenAI chat-completions API behind the single
// Complete call the newsroom needs.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Options configures the completion client. BaseURL overrides the API
// endpoint, which tests point at a local server.
type Options struct {
	APIKey      string
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int64
	Timeout     time.Duration
	BaseURL     string
}

// Client calls the chat-completions endpoint with fixed model parameters.
type Client struct {
	api  openai.Client
	opts Options
}

// NewClient builds a completion client from opts.
func NewClient(opts Options) *Client {
	// Failures fail the single article and the batch moves on, so the
	// SDK's own retry loop is disabled.
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	return &Client{api: openai.NewClient(reqOpts...), opts: opts}
}

// Complete sends one system+user prompt pair and returns the raw response
// text. The configured timeout bounds each request.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.opts.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(c.opts.Temperature),
		TopP:        openai.Float(c.opts.TopP),
		MaxTokens:   openai.Int(c.opts.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
