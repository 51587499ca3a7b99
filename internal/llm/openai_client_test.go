// ABOUTME: Tests for the chat-completion client against a stubbed API
// ABOUTME: Verifies message mapping, retries and permanent error handling
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/harper/faqbot/internal/core"
	"github.com/harper/faqbot/internal/models"
	"github.com/harper/faqbot/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

type stubAPI struct {
	responses []openai.ChatCompletionResponse
	errs      []error
	calls     int
	lastReq   openai.ChatCompletionRequest
}

func (s *stubAPI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	i := s.calls
	s.calls++
	s.lastReq = req
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return openai.ChatCompletionResponse{}, err
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return s.responses[len(s.responses)-1], nil
}

func reply(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: text}}},
	}
}

func newTestClient(api chatAPI, retries int) *ChatClient {
	return &ChatClient{api: api, chatModel: DefaultChatModel, maxRetries: retries, retryDelay: time.Millisecond}
}

func TestNewChatClientWithConfig_RequiresKey(t *testing.T) {
	if _, err := NewChatClientWithConfig(&ClientConfig{}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestNewChatClient_Defaults(t *testing.T) {
	c, err := NewChatClient("test-key")
	if err != nil {
		t.Fatalf("NewChatClient() error = %v", err)
	}
	if c.Model() != DefaultChatModel {
		t.Errorf("Model() = %q, want %q", c.Model(), DefaultChatModel)
	}
}

func TestComplete_MapsMessages(t *testing.T) {
	api := &stubAPI{responses: []openai.ChatCompletionResponse{reply("hi there")}}
	c := newTestClient(api, 0)

	got, err := c.Complete(context.Background(), []models.Message{
		{Role: models.RoleSystem, Content: "sys"},
		{Role: models.RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "hi there" {
		t.Errorf("Complete() = %q", got)
	}
	if len(api.lastReq.Messages) != 2 || api.lastReq.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("unexpected request messages: %+v", api.lastReq.Messages)
	}
	if api.lastReq.Model != DefaultChatModel {
		t.Errorf("Model = %q", api.lastReq.Model)
	}
}

func TestComplete_RetriesTransientErrors(t *testing.T) {
	api := &stubAPI{
		errs:      []error{errors.New("connection reset"), nil},
		responses: []openai.ChatCompletionResponse{{}, reply("ok")},
	}
	c := newTestClient(api, 2)

	got, err := c.Complete(context.Background(), nil)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "ok" || api.calls != 2 {
		t.Errorf("Complete() = %q after %d calls", got, api.calls)
	}
}

func TestComplete_EmptyChoicesIsError(t *testing.T) {
	api := &stubAPI{responses: []openai.ChatCompletionResponse{{}}}
	c := newTestClient(api, 1)

	if _, err := c.Complete(context.Background(), nil); err == nil {
		t.Error("expected error for empty choices")
	}
	if api.calls != 2 {
		t.Errorf("calls = %d, want 2", api.calls)
	}
}

func TestComplete_UnauthorizedNotRetried(t *testing.T) {
	api := &stubAPI{errs: []error{&openai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "invalid key"}}}
	c := newTestClient(api, 3)

	_, err := c.Complete(context.Background(), nil)
	if !errors.Is(err, util.ErrPermanent) {
		t.Errorf("Complete() error = %v, want permanent", err)
	}
	if api.calls != 1 {
		t.Errorf("calls = %d, want 1", api.calls)
	}
}

func TestComplete_ErrorIsRootCause(t *testing.T) {
	api := &stubAPI{errs: []error{&openai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "Invalid API Key"}}}
	c := newTestClient(api, 2)

	_, err := c.Complete(context.Background(), nil)
	if err == nil {
		t.Fatal("Complete() should fail")
	}
	if err.Error() != "401 Invalid API Key" {
		t.Errorf("Complete() error = %q, want %q", err.Error(), "401 Invalid API Key")
	}
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		t.Error("error should still unwrap to *openai.APIError")
	}

	text := core.Diagnostic(err)
	if !strings.Contains(text, "401") || !strings.Contains(text, "Invalid API Key") {
		t.Errorf("Diagnostic() = %q, want the status and message", text)
	}
}

func TestComplete_TransientStatusIsRetried(t *testing.T) {
	api := &stubAPI{
		errs:      []error{&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, nil},
		responses: []openai.ChatCompletionResponse{{}, reply("ok")},
	}
	c := newTestClient(api, 1)

	got, err := c.Complete(context.Background(), nil)
	if err != nil || got != "ok" {
		t.Errorf("Complete() = %q, %v, want ok after retry", got, err)
	}
}

func TestStatusError_Message(t *testing.T) {
	tests := []struct {
		err  *StatusError
		want string
	}{
		{&StatusError{Code: 401, Message: "Invalid API Key"}, "401 Invalid API Key"},
		{&StatusError{Code: 503}, "503 Service Unavailable"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsPermanentStatus(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusBadRequest, true},
		{http.StatusUnauthorized, true},
		{http.StatusTooManyRequests, false},
		{http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		if got := isPermanentStatus(tt.code); got != tt.want {
			t.Errorf("isPermanentStatus(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
