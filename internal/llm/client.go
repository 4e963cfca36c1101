package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/sales-agent/backend/pkg/circuitbreaker"
	"github.com/sales-agent/backend/pkg/logger"
	"github.com/sales-agent/backend/pkg/retry"
)

// ContentPart is one segment of a chat response. Providers may interleave
// text with other payload kinds; consumers extract TextPart only.
type ContentPart interface {
	isContentPart()
}

type TextPart struct {
	Text string
}

type OtherPart struct {
	Kind string
}

func (TextPart) isContentPart()  {}
func (OtherPart) isContentPart() {}

type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

type ChatResult struct {
	Parts []ContentPart
}

// Text concatenates the text segments of the result.
func (r *ChatResult) Text() string {
	var out string
	for _, part := range r.Parts {
		if tp, ok := part.(TextPart); ok {
			out += tp.Text
		}
	}
	return out
}

// ChatClient is the chat completion capability the orchestrator depends on.
// Implementations are expected to fail with an error rather than panic; the
// caller decides how failures degrade.
type ChatClient interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResult, error)
}

// Client talks to an OpenAI-compatible chat endpoint. The default deployment
// points it at Cohere's compatibility API.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	cb          *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
}

func NewClient(apiKey, baseURL, model string, temperature float32, maxTokens, timeoutSec int) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	cb := circuitbreaker.NewCircuitBreaker("llm", circuitbreaker.Config{
		MaxRequests:      5,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger.GetLogger(),
	})

	retryConfig := retry.Config{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
		Logger:         logger.GetLogger(),
	}

	timeout := time.Duration(timeoutSec) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	logger.Info("LLM client initialized",
		zap.String("model", model),
		zap.String("base_url", cfg.BaseURL),
	)

	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		timeout:     timeout,
		cb:          cb,
		retryConfig: retryConfig,
	}
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: req.UserPrompt,
		},
	}

	var result *ChatResult

	err := c.cb.Execute(ctx, func() error {
		return retry.Do(ctx, c.retryConfig, func() error {
			resp, err := c.client.CreateChatCompletion(
				ctx,
				openai.ChatCompletionRequest{
					Model:       c.model,
					Messages:    messages,
					Temperature: temperature,
					MaxTokens:   maxTokens,
				},
			)

			if err != nil {
				return fmt.Errorf("failed to create completion: %w", err)
			}

			logger.Debug("Chat completion generated",
				zap.Int("prompt_tokens", resp.Usage.PromptTokens),
				zap.Int("completion_tokens", resp.Usage.CompletionTokens),
			)

			result = &ChatResult{Parts: partsFromResponse(resp)}

			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// partsFromResponse maps the provider payload into tagged content parts.
// Choices without message text map to OtherPart so callers can see that a
// segment arrived even when it carried nothing usable.
func partsFromResponse(resp openai.ChatCompletionResponse) []ContentPart {
	var parts []ContentPart
	for _, choice := range resp.Choices {
		if choice.Message.Content != "" {
			parts = append(parts, TextPart{Text: choice.Message.Content})
			continue
		}
		parts = append(parts, OtherPart{Kind: string(choice.FinishReason)})
	}
	return parts
}
