// ABOUTME: FAQ storage operations for SQLite
// ABOUTME: CRUD for question/answer pairs, listed in insertion order
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harper/faqbot/internal/models"
)

// FAQStore handles FAQ persistence
type FAQStore struct {
	db *DB
}

// NewFAQStore creates a new FAQStore
func NewFAQStore(db *DB) *FAQStore {
	return &FAQStore{db: db}
}

const insertFAQ = `INSERT INTO faqs (id, question, answer, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`

// Insert adds a new FAQ
func (s *FAQStore) Insert(ctx context.Context, faq *models.FAQ) error {
	_, err := s.db.ExecContext(ctx, insertFAQ, faq.ID, faq.Question, faq.Answer, faq.CreatedAt, faq.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert faq: %w", err)
	}
	return nil
}

// Get retrieves one FAQ by id
func (s *FAQStore) Get(ctx context.Context, id string) (*models.FAQ, error) {
	var faq models.FAQ
	err := s.db.QueryRowContext(ctx, `
		SELECT id, question, answer, created_at, updated_at
		FROM faqs WHERE id = ?
	`, id).Scan(&faq.ID, &faq.Question, &faq.Answer, &faq.CreatedAt, &faq.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("faq %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

// List returns all FAQs in insertion order
func (s *FAQStore) List(ctx context.Context) ([]models.FAQ, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer, created_at, updated_at
		FROM faqs
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	faqs := []models.FAQ{}
	for rows.Next() {
		var faq models.FAQ
		if err := rows.Scan(&faq.ID, &faq.Question, &faq.Answer, &faq.CreatedAt, &faq.UpdatedAt); err != nil {
			return nil, err
		}
		faqs = append(faqs, faq)
	}
	return faqs, rows.Err()
}

// Update replaces the question and answer of an existing FAQ, keeping its position
func (s *FAQStore) Update(ctx context.Context, id, question, answer string) (*models.FAQ, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE faqs SET question = ?, answer = ?, updated_at = ? WHERE id = ?
	`, question, answer, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update faq: %w", err)
	}
	if err := requireAffected(res, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes an FAQ
func (s *FAQStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM faqs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete faq: %w", err)
	}
	return requireAffected(res, id)
}

// InsertMany adds several FAQs atomically
func (s *FAQStore) InsertMany(ctx context.Context, faqs []models.FAQ) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, faq := range faqs {
			if _, err := tx.ExecContext(ctx, insertFAQ, faq.ID, faq.Question, faq.Answer, faq.CreatedAt, faq.UpdatedAt); err != nil {
				return fmt.Errorf("failed to insert faq %q: %w", faq.Question, err)
			}
		}
		return nil
	})
}

// ReplaceAll swaps the whole corpus for faqs in one transaction
func (s *FAQStore) ReplaceAll(ctx context.Context, faqs []models.FAQ) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM faqs"); err != nil {
			return fmt.Errorf("failed to clear faqs: %w", err)
		}
		for _, faq := range faqs {
			if _, err := tx.ExecContext(ctx, insertFAQ, faq.ID, faq.Question, faq.Answer, faq.CreatedAt, faq.UpdatedAt); err != nil {
				return fmt.Errorf("failed to insert faq %q: %w", faq.Question, err)
			}
		}
		return nil
	})
}

// Count returns the number of stored FAQs
func (s *FAQStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM faqs").Scan(&n)
	return n, err
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("faq %s: %w", id, ErrNotFound)
	}
	return nil
}
