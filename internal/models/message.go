// ABOUTME: Chat message and answer types shared by the engine and its callers
// ABOUTME: Roles mirror the chat-completion API roles
package models

// Role identifies who authored a message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Source tells where an answer came from
type Source string

const (
	SourceFAQ Source = "faq"
	SourceAI  Source = "ai"
)

// Answer is the result of answering a single query
type Answer struct {
	Text       string  `json:"answer"`
	Source     Source  `json:"source"`
	Confidence float64 `json:"confidence"`
	SessionID  string  `json:"session_id"`
	// MatchedFAQID is set only when Source is SourceFAQ
	MatchedFAQID string `json:"matched_faq_id,omitempty"`
	// FallbackFailed reports that the answer text is a diagnostic, not a model reply
	FallbackFailed bool `json:"fallback_failed,omitempty"`
}
