// ABOUTME: Feedback storage operations for SQLite
// ABOUTME: Thumbs up/down ratings keyed by the query they rate
package sqlite

import (
	"context"
	"fmt"

	"github.com/harper/faqbot/internal/models"
)

// FeedbackStore handles feedback persistence
type FeedbackStore struct {
	db *DB
}

// NewFeedbackStore creates a new FeedbackStore
func NewFeedbackStore(db *DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Save records a rating
func (s *FeedbackStore) Save(ctx context.Context, fb models.Feedback) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (id, query, is_positive, created_at) VALUES (?, ?, ?, ?)
	`, fb.ID, fb.Query, fb.IsPositive, fb.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// List returns all feedback oldest first
func (s *FeedbackStore) List(ctx context.Context) ([]models.Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, is_positive, created_at FROM feedback ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Feedback{}
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.Query, &fb.IsPositive, &fb.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}

// Counts returns the number of positive and negative ratings
func (s *FeedbackStore) Counts(ctx context.Context) (positive, negative int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(is_positive), 0), COALESCE(SUM(1 - is_positive), 0) FROM feedback
	`).Scan(&positive, &negative)
	return positive, negative, err
}
