// ABOUTME: OpenAI-compatible chat-completion client used for the AI fallback
// ABOUTME: Defaults to Groq's endpoint and llama-3.1-8b-instant (configurable)
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/harper/faqbot/internal/models"
	"github.com/harper/faqbot/internal/util"
	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "llama-3.1-8b-instant"
	// DefaultBaseURL points at Groq's OpenAI-compatible API
	DefaultBaseURL = "https://api.groq.com/openai/v1"
)

// ClientConfig holds configuration for the chat client
type ClientConfig struct {
	APIKey      string
	BaseURL     string
	ChatModel   string
	Temperature float32
	MaxRetries  int
	RetryDelay  time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		ChatModel:  DefaultChatModel,
		MaxRetries: 2,
		RetryDelay: time.Second,
	}
}

// chatAPI is the subset of the go-openai client used here
type chatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatClient wraps the chat-completion API with retry logic
type ChatClient struct {
	api         chatAPI
	chatModel   string
	temperature float32
	maxRetries  int
	retryDelay  time.Duration
}

// NewChatClient creates a client with the given API key using default configuration
func NewChatClient(apiKey string) (*ChatClient, error) {
	return NewChatClientWithConfig(DefaultConfig(apiKey))
}

// NewChatClientWithConfig creates a client with custom configuration
func NewChatClientWithConfig(config *ClientConfig) (*ChatClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("LLM API key is required")
	}

	oaConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		oaConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}

	model := config.ChatModel
	if model == "" {
		model = DefaultChatModel
	}

	return &ChatClient{
		api:         openai.NewClientWithConfig(oaConfig),
		chatModel:   model,
		temperature: config.Temperature,
		maxRetries:  config.MaxRetries,
		retryDelay:  config.RetryDelay,
	}, nil
}

// Model returns the configured chat model identifier
func (c *ChatClient) Model() string {
	return c.chatModel
}

// Complete sends the conversation and returns the first choice's content.
// On failure the error is the cause of the last attempt; the model and the
// retry count go to the log.
func (c *ChatClient) Complete(ctx context.Context, messages []models.Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    toChatMessages(messages),
		Temperature: c.temperature,
	}

	var (
		content string
		cause   error
	)
	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) error {
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			cause = classify(err)
			return cause
		}
		if len(resp.Choices) == 0 {
			cause = errNoChoices
			return cause
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err == nil {
		return content, nil
	}

	log.WithFields(log.Fields{"model": c.chatModel, "error": err}).Debug("chat completion failed")
	switch {
	case cause == nil:
		return "", err
	case ctx.Err() != nil && !errors.Is(cause, ctx.Err()):
		return "", fmt.Errorf("%w: %w", ctx.Err(), cause)
	default:
		return "", cause
	}
}

func toChatMessages(messages []models.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content}
	}
	return out
}

var errNoChoices = errors.New("no completion choices returned")

// StatusError is an HTTP failure reported by the chat-completion API
type StatusError struct {
	Code      int
	Message   string
	Permanent bool
	err       error
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	return fmt.Sprintf("%d %s", e.Code, msg)
}

func (e *StatusError) Unwrap() error { return e.err }

// Is lets retry logic recognise statuses that retrying cannot fix
func (e *StatusError) Is(target error) bool {
	return e.Permanent && target == util.ErrPermanent
}

// classify turns API and transport status failures into a StatusError
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return &StatusError{
			Code:      apiErr.HTTPStatusCode,
			Message:   apiErr.Message,
			Permanent: isPermanentStatus(apiErr.HTTPStatusCode),
			err:       err,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return &StatusError{
			Code:      reqErr.HTTPStatusCode,
			Permanent: isPermanentStatus(reqErr.HTTPStatusCode),
			err:       err,
		}
	}
	return err
}

func isPermanentStatus(code int) bool {
	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}
