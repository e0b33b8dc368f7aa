package genai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// TextClient issues a single text-generation request and returns the raw
// completion text. Implementations map provider failures to plain errors;
// callers decide how soft those failures are.
type TextClient interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

const defaultModel = "gpt-4"

// Config carries the settings for the OpenAI-backed client.
type Config struct {
	APIKey string
	Model  string
}

// OpenAIClient implements TextClient on top of the OpenAI chat completions API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient builds a client. An empty APIKey falls back to the
// OPENAI_API_KEY environment variable.
func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(key)),
		model:  model,
	}, nil
}

// Model returns the configured model identifier.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Generate sends one chat completion request. No retries are attempted.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// IsRateLimited reports whether the error is a provider rate-limit rejection.
// Callers use it only to pick a log message; the failure handling is the same.
func IsRateLimited(err error) bool {
	var apiErr *openai.Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == 429
}

var _ TextClient = (*OpenAIClient)(nil)
