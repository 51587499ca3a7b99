// ABOUTME: Storage facade over the SQLite stores for FAQs, chat logs and feedback
// ABOUTME: Publishes change events after every corpus mutation so the engine can refresh
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/harper/faqbot/internal/models"
	"github.com/harper/faqbot/internal/storage/sqlite"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrNotFound is returned for unknown FAQ ids
	ErrNotFound = sqlite.ErrNotFound
	// ErrInvalidFAQ wraps validation failures on FAQ content
	ErrInvalidFAQ = errors.New("invalid faq")
)

// ChangeKind identifies what happened to the corpus
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeUpdated  ChangeKind = "updated"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeImported ChangeKind = "imported"
	ChangeReplaced ChangeKind = "replaced"
)

// ChangeEvent describes one committed corpus mutation
type ChangeEvent struct {
	Kind  ChangeKind
	FAQID string
	Count int
}

// ChangeListener is called synchronously after a mutation commits
type ChangeListener func(ctx context.Context, ev ChangeEvent)

// Storage manages all persistent data for the FAQ bot
type Storage struct {
	db       *sqlite.DB
	faqs     *sqlite.FAQStore
	logs     *sqlite.ChatLogStore
	feedback *sqlite.FeedbackStore

	mu        sync.RWMutex
	listeners []ChangeListener
}

// NewStorage opens storage at dbPath, or the XDG default when empty
func NewStorage(dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db), nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *sqlite.DB) *Storage {
	return &Storage{
		db:       db,
		faqs:     sqlite.NewFAQStore(db),
		logs:     sqlite.NewChatLogStore(db),
		feedback: sqlite.NewFeedbackStore(db),
	}
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database location
func (s *Storage) Path() string {
	return s.db.Path()
}

// OnChange registers a listener for corpus mutations
func (s *Storage) OnChange(fn ChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Storage) notify(ctx context.Context, ev ChangeEvent) {
	s.mu.RLock()
	listeners := make([]ChangeListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	log.WithFields(log.Fields{"kind": ev.Kind, "faq_id": ev.FAQID, "count": ev.Count}).Debug("faq corpus changed")
	for _, fn := range listeners {
		fn(ctx, ev)
	}
}

// ListFAQs returns the corpus in insertion order
func (s *Storage) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	return s.faqs.List(ctx)
}

// GetFAQ returns one FAQ
func (s *Storage) GetFAQ(ctx context.Context, id string) (*models.FAQ, error) {
	return s.faqs.Get(ctx, id)
}

// AddFAQ validates and stores a new FAQ
func (s *Storage) AddFAQ(ctx context.Context, question, answer string) (*models.FAQ, error) {
	faq, err := models.NewFAQ(question, answer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFAQ, err)
	}
	if err := s.faqs.Insert(ctx, faq); err != nil {
		return nil, err
	}
	s.notify(ctx, ChangeEvent{Kind: ChangeAdded, FAQID: faq.ID, Count: 1})
	return faq, nil
}

// UpdateFAQ replaces the content of an existing FAQ
func (s *Storage) UpdateFAQ(ctx context.Context, id, question, answer string) (*models.FAQ, error) {
	question, answer = strings.TrimSpace(question), strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, fmt.Errorf("%w: question and answer are required", ErrInvalidFAQ)
	}
	faq, err := s.faqs.Update(ctx, id, question, answer)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, ChangeEvent{Kind: ChangeUpdated, FAQID: id, Count: 1})
	return faq, nil
}

// DeleteFAQ removes an FAQ
func (s *Storage) DeleteFAQ(ctx context.Context, id string) error {
	if err := s.faqs.Delete(ctx, id); err != nil {
		return err
	}
	s.notify(ctx, ChangeEvent{Kind: ChangeDeleted, FAQID: id, Count: 1})
	return nil
}

// ImportFAQs appends faqs to the corpus in one transaction
func (s *Storage) ImportFAQs(ctx context.Context, faqs []models.FAQ) (int, error) {
	if len(faqs) == 0 {
		return 0, nil
	}
	if err := s.faqs.InsertMany(ctx, faqs); err != nil {
		return 0, err
	}
	s.notify(ctx, ChangeEvent{Kind: ChangeImported, Count: len(faqs)})
	return len(faqs), nil
}

// ReplaceFAQs swaps the whole corpus, used when pulling a remote copy
func (s *Storage) ReplaceFAQs(ctx context.Context, faqs []models.FAQ) error {
	if err := s.faqs.ReplaceAll(ctx, faqs); err != nil {
		return err
	}
	s.notify(ctx, ChangeEvent{Kind: ChangeReplaced, Count: len(faqs)})
	return nil
}

// ImportCSV adds every row with a question and an answer
func (s *Storage) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	faqs, err := sqlite.ReadCSV(r)
	if err != nil {
		return 0, err
	}
	return s.ImportFAQs(ctx, faqs)
}

// ImportYAML adds the FAQs from a YAML export document. Each entry gets a
// fresh id so a store can re-import its own export.
func (s *Storage) ImportYAML(ctx context.Context, r io.Reader) (int, error) {
	faqs, err := sqlite.ReadYAML(r)
	if err != nil {
		return 0, err
	}
	for i := range faqs {
		faqs[i].ID = uuid.New().String()
	}
	return s.ImportFAQs(ctx, faqs)
}

// ReplaceCSV parses r and only then swaps the corpus for its rows.
// A parse error leaves the corpus untouched.
func (s *Storage) ReplaceCSV(ctx context.Context, r io.Reader) (int, error) {
	faqs, err := sqlite.ReadCSV(r)
	if err != nil {
		return 0, err
	}
	if err := s.ReplaceFAQs(ctx, faqs); err != nil {
		return 0, err
	}
	return len(faqs), nil
}

// ReplaceYAML parses r and only then swaps the corpus for its entries,
// keeping their ids.
func (s *Storage) ReplaceYAML(ctx context.Context, r io.Reader) (int, error) {
	faqs, err := sqlite.ReadYAML(r)
	if err != nil {
		return 0, err
	}
	if err := s.ReplaceFAQs(ctx, faqs); err != nil {
		return 0, err
	}
	return len(faqs), nil
}

// ExportCSV writes the corpus as question,answer CSV
func (s *Storage) ExportCSV(ctx context.Context, w io.Writer) error {
	faqs, err := s.faqs.List(ctx)
	if err != nil {
		return err
	}
	return sqlite.WriteCSV(w, faqs)
}

// ExportYAML writes the corpus as a YAML document
func (s *Storage) ExportYAML(ctx context.Context, w io.Writer) error {
	faqs, err := s.faqs.List(ctx)
	if err != nil {
		return err
	}
	return sqlite.WriteYAML(w, faqs)
}

// LogChat records one answered query
func (s *Storage) LogChat(ctx context.Context, entry models.ChatLog) error {
	return s.logs.Save(ctx, entry)
}

// ChatLogs returns the most recent logged interactions, oldest first
func (s *Storage) ChatLogs(ctx context.Context, limit int) ([]models.ChatLog, error) {
	return s.logs.List(ctx, limit)
}

// AddFeedback records a rating for a query
func (s *Storage) AddFeedback(ctx context.Context, query string, isPositive bool) (*models.Feedback, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("feedback query cannot be empty")
	}
	fb := models.NewFeedback(query, isPositive)
	if err := s.feedback.Save(ctx, fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// Feedback returns every recorded rating, oldest first
func (s *Storage) Feedback(ctx context.Context) ([]models.Feedback, error) {
	return s.feedback.List(ctx)
}

// Analytics summarizes the chat log and feedback
func (s *Storage) Analytics(ctx context.Context) (*models.Analytics, error) {
	a, err := s.logs.Analytics(ctx)
	if err != nil {
		return nil, err
	}
	a.PositiveRatings, a.NegativeRatings, err = s.feedback.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}
	return a, nil
}
