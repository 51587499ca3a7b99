// ABOUTME: Answer engine deciding between a stored FAQ answer and the AI fallback
// ABOUTME: Holds the corpus snapshot, session memory, and chat log wiring
package core

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harper/faqbot/internal/metrics"
	"github.com/harper/faqbot/internal/models"
	log "github.com/sirupsen/logrus"
)

// DefaultThreshold is the minimum similarity for answering from the corpus
const DefaultThreshold = 0.3

// FAQSource lists the current FAQ corpus in a stable order
type FAQSource interface {
	ListFAQs(ctx context.Context) ([]models.FAQ, error)
}

// ChatLogSink receives a record of every answered query
type ChatLogSink interface {
	LogChat(ctx context.Context, entry models.ChatLog) error
}

// EngineConfig holds tunables for the engine
type EngineConfig struct {
	Threshold float64
}

// corpusSnapshot pairs a corpus with the index built from it
type corpusSnapshot struct {
	faqs  []models.FAQ
	index *IndexSnapshot
}

// Engine answers queries from the FAQ corpus, or via the fallback
type Engine struct {
	source    FAQSource
	index     *SimilarityIndex
	memory    *ConversationMemory
	fallback  *Fallback
	sink      ChatLogSink
	threshold float64

	corpus    atomic.Pointer[corpusSnapshot]
	refreshMu sync.Mutex
}

// NewEngine wires the engine. cfg.Threshold is used as given, so a zero
// threshold answers every query with a non-empty corpus from the FAQs.
// sink may be nil when interactions need not be logged.
func NewEngine(cfg EngineConfig, source FAQSource, memory *ConversationMemory, fallback *Fallback, sink ChatLogSink) *Engine {
	e := &Engine{
		source:    source,
		index:     NewSimilarityIndex(),
		memory:    memory,
		fallback:  fallback,
		sink:      sink,
		threshold: cfg.Threshold,
	}
	e.corpus.Store(&corpusSnapshot{})
	return e
}

// Threshold returns the configured confidence threshold
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// Memory exposes the session memory
func (e *Engine) Memory() *ConversationMemory {
	return e.memory
}

// Refresh reloads the corpus and rebuilds the index
func (e *Engine) Refresh(ctx context.Context) error {
	e.refreshMu.Lock()
	defer e.refreshMu.Unlock()

	// listing under the lock keeps a slow older read from publishing last
	faqs, err := e.source.ListFAQs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load faqs: %w", err)
	}
	e.load(faqs)
	return nil
}

// Load rebuilds the index from the given corpus and publishes both together
func (e *Engine) Load(faqs []models.FAQ) {
	e.refreshMu.Lock()
	defer e.refreshMu.Unlock()
	e.load(faqs)
}

func (e *Engine) load(faqs []models.FAQ) {
	start := time.Now()
	corpus := make([]models.FAQ, len(faqs))
	copy(corpus, faqs)

	snap := e.index.Rebuild(models.Questions(corpus))
	e.corpus.Store(&corpusSnapshot{faqs: corpus, index: snap})

	metrics.ObserveRebuild(time.Since(start), len(corpus))
	log.WithFields(log.Fields{
		"faqs":       len(corpus),
		"vocabulary": snap.VocabularySize(),
	}).Debug("faq index rebuilt")
}

// CorpusSize returns the number of FAQs currently indexed
func (e *Engine) CorpusSize() int {
	return len(e.corpus.Load().faqs)
}

// Answer responds using the configured threshold
func (e *Engine) Answer(ctx context.Context, query, sessionID string) models.Answer {
	return e.AnswerWithThreshold(ctx, query, sessionID, e.threshold)
}

// AnswerWithThreshold responds to query for the session. It never fails: a
// broken fallback yields a diagnostic text with source "ai".
func (e *Engine) AnswerWithThreshold(ctx context.Context, query, sessionID string, threshold float64) models.Answer {
	answer := e.decide(ctx, query, sessionID, threshold)

	metrics.ObserveAnswer(string(answer.Source), answer.Confidence, answer.FallbackFailed)
	metrics.SetSessions(e.memory.Len())

	if e.sink != nil {
		if err := e.sink.LogChat(ctx, models.NewChatLog(query, answer)); err != nil {
			log.WithError(err).Warn("failed to record chat log")
		}
	}
	return answer
}

func (e *Engine) decide(ctx context.Context, query, sessionID string, threshold float64) models.Answer {
	snap := e.corpus.Load()
	if len(snap.faqs) == 0 || snap.index.Len() == 0 {
		return e.viaFallback(ctx, query, sessionID, 0)
	}

	idx, confidence := snap.index.BestMatch(Normalize(query))
	if confidence >= threshold {
		faq := snap.faqs[idx]
		e.memory.AppendExchange(sessionID, query, faq.Answer)
		return models.Answer{
			Text:         faq.Answer,
			Source:       models.SourceFAQ,
			Confidence:   confidence,
			SessionID:    sessionID,
			MatchedFAQID: faq.ID,
		}
	}
	return e.viaFallback(ctx, query, sessionID, confidence)
}

func (e *Engine) viaFallback(ctx context.Context, query, sessionID string, confidence float64) models.Answer {
	result := e.fallback.Reply(ctx, sessionID, query)
	return models.Answer{
		Text:           result.Text,
		Source:         models.SourceAI,
		Confidence:     confidence,
		SessionID:      sessionID,
		FallbackFailed: result.Failed,
	}
}
