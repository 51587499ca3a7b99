// ABOUTME: Wires storage, the LLM client and the answer engine from configuration
// ABOUTME: Shared by the CLI, the HTTP server and the MCP server
package app

import (
	"context"
	"fmt"

	"github.com/harper/faqbot/internal/config"
	"github.com/harper/faqbot/internal/core"
	"github.com/harper/faqbot/internal/llm"
	"github.com/harper/faqbot/internal/storage"
	log "github.com/sirupsen/logrus"
)

// App holds the long-lived components of a running faqbot
type App struct {
	Config  *config.Config
	Storage *storage.Storage
	Memory  *core.ConversationMemory
	Engine  *core.Engine
}

// New opens storage at cfg.DBPath and builds the engine. Without an API key the
// fallback degrades to a diagnostic answer instead of failing startup.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := storage.NewStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var client core.FallbackClient
	if cfg.HasLLM() {
		chat, err := llm.NewChatClientWithConfig(&llm.ClientConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.LLMBaseURL,
			ChatModel:   cfg.ChatModel,
			Temperature: float32(cfg.Temperature),
			MaxRetries:  cfg.MaxRetries,
			RetryDelay:  cfg.RetryDelay,
		})
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		client = chat
	} else {
		log.Warn("GROQ_API_KEY not set - questions below the match threshold will get an error reply")
	}

	a, err := NewWithStorage(ctx, cfg, store, client)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

// NewWithStorage builds the engine over an existing store. client may be nil.
func NewWithStorage(ctx context.Context, cfg *config.Config, store *storage.Storage, client core.FallbackClient) (*App, error) {
	memory := core.NewConversationMemory(cfg.HistorySize, cfg.SessionTTL)
	fallback := core.NewFallback(client, memory, cfg.FallbackTimeout)
	engine := core.NewEngine(core.EngineConfig{Threshold: cfg.MatchThreshold}, store, memory, fallback, store)

	store.OnChange(func(ctx context.Context, ev storage.ChangeEvent) {
		if err := engine.Refresh(ctx); err != nil {
			log.WithError(err).WithField("change", ev.Kind).Error("failed to refresh faq index")
		}
	})

	if err := engine.Refresh(ctx); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"faqs":      engine.CorpusSize(),
		"threshold": engine.Threshold(),
		"db":        store.Path(),
	}).Debug("answer engine ready")

	return &App{
		Config:  cfg,
		Storage: store,
		Memory:  memory,
		Engine:  engine,
	}, nil
}

// Close releases the database
func (a *App) Close() error {
	return a.Storage.Close()
}
