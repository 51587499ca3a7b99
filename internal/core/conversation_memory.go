// ABOUTME: Per-session bounded conversation history used as fallback context
// ABOUTME: Sessions live in a TTL cache so idle sessions are evicted
package core

import (
	"sync"
	"time"

	"github.com/harper/faqbot/internal/models"
	"github.com/patrickmn/go-cache"
)

// DefaultHistorySize keeps the last three exchanges
const DefaultHistorySize = 6

type sessionHistory struct {
	mu       sync.Mutex
	messages []models.Message
}

// ConversationMemory maps session IDs to their most recent messages.
// Access is serialized per session; different sessions do not contend.
type ConversationMemory struct {
	sessions *cache.Cache
	size     int
	mu       sync.Mutex // guards cache lookups and inserts
}

// NewConversationMemory creates a memory that keeps size messages per session.
// A ttl of zero keeps sessions for the life of the process.
func NewConversationMemory(size int, ttl time.Duration) *ConversationMemory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	cleanup := ttl / 2
	if ttl <= 0 {
		ttl = cache.NoExpiration
		cleanup = 0
	}
	return &ConversationMemory{
		sessions: cache.New(ttl, cleanup),
		size:     size,
	}
}

// History returns a copy of the session's recent messages, oldest first.
// Unknown sessions yield an empty slice.
func (m *ConversationMemory) History(sessionID string) []models.Message {
	m.mu.Lock()
	x, found := m.sessions.Get(sessionID)
	m.mu.Unlock()
	if !found {
		return []models.Message{}
	}
	h := x.(*sessionHistory)
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]models.Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Append adds a message and drops anything older than the window.
// Each append also refreshes the session's expiry.
func (m *ConversationMemory) Append(sessionID string, role models.Role, content string) {
	m.appendTo(sessionID, m.session(sessionID), models.Message{Role: role, Content: content})
}

// appendTo adds msg to h and puts h back in the cache if the janitor
// evicted it between lookup and append.
func (m *ConversationMemory) appendTo(sessionID string, h *sessionHistory, msg models.Message) {
	h.mu.Lock()
	h.messages = append(h.messages, msg)
	if over := len(h.messages) - m.size; over > 0 {
		trimmed := make([]models.Message, m.size)
		copy(trimmed, h.messages[over:])
		h.messages = trimmed
	}
	h.mu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, found := m.sessions.Get(sessionID); !found {
		m.sessions.SetDefault(sessionID, h)
	}
}

// AppendExchange records a user query and the assistant reply together
func (m *ConversationMemory) AppendExchange(sessionID, query, reply string) {
	m.Append(sessionID, models.RoleUser, query)
	m.Append(sessionID, models.RoleAssistant, reply)
}

// Len returns the number of live sessions
func (m *ConversationMemory) Len() int {
	return m.sessions.ItemCount()
}

func (m *ConversationMemory) session(sessionID string) *sessionHistory {
	m.mu.Lock()
	defer m.mu.Unlock()

	if x, found := m.sessions.Get(sessionID); found {
		h := x.(*sessionHistory)
		m.sessions.SetDefault(sessionID, h)
		return h
	}
	h := &sessionHistory{}
	m.sessions.SetDefault(sessionID, h)
	return h
}
