// ABOUTME: Fallback delegation to an external chat-completion service
// ABOUTME: Failures are converted into a short diagnostic answer instead of an error
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harper/faqbot/internal/models"
	"github.com/harper/faqbot/internal/util"
	log "github.com/sirupsen/logrus"
)

// SystemPrompt is sent as the first message of every fallback request
const SystemPrompt = "You are a professional, multilingual AI FAQ Assistant. Maintain context. " +
	"If the user speaks a non-English language, respond in that language. Keep it structured and concise."

// diagnosticLimit bounds how much of an error is shown to the user
const diagnosticLimit = 50

// ErrNoFallbackClient is reported when no chat-completion client is configured
var ErrNoFallbackClient = errors.New("fallback client not configured")

// FallbackClient completes a conversation using an external model
type FallbackClient interface {
	Complete(ctx context.Context, messages []models.Message) (string, error)
}

// FallbackResult is the reply text and whether it is a failure diagnostic
type FallbackResult struct {
	Text   string
	Failed bool
	Err    error
}

// Fallback builds the prompt from session history and never fails outward
type Fallback struct {
	client  FallbackClient
	memory  *ConversationMemory
	timeout time.Duration
}

// NewFallback creates a fallback adapter. client may be nil, in which case
// every reply is a diagnostic.
func NewFallback(client FallbackClient, memory *ConversationMemory, timeout time.Duration) *Fallback {
	return &Fallback{client: client, memory: memory, timeout: timeout}
}

// BuildMessages assembles system prompt, history and the current query
func BuildMessages(history []models.Message, query string) []models.Message {
	messages := make([]models.Message, 0, len(history)+2)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: SystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, models.Message{Role: models.RoleUser, Content: query})
	return messages
}

// Reply asks the external model to answer query in the context of the
// session. Memory is updated only when the call succeeds.
func (f *Fallback) Reply(ctx context.Context, sessionID, query string) FallbackResult {
	if f.client == nil {
		return failed(ErrNoFallbackClient)
	}

	messages := BuildMessages(f.memory.History(sessionID), query)

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	reply, err := f.client.Complete(ctx, messages)
	if err != nil {
		log.WithFields(log.Fields{"session_id": sessionID, "error": err}).Warn("fallback completion failed")
		return failed(err)
	}
	if reply == "" {
		return failed(errors.New("empty completion returned"))
	}

	f.memory.AppendExchange(sessionID, query, reply)
	return FallbackResult{Text: reply}
}

func failed(err error) FallbackResult {
	return FallbackResult{
		Text:   Diagnostic(err),
		Failed: true,
		Err:    err,
	}
}

// Diagnostic renders an error as a short user-facing answer
func Diagnostic(err error) string {
	return fmt.Sprintf("Error connecting to AI: %s...", util.TruncateRunes(err.Error(), diagnosticLimit))
}
