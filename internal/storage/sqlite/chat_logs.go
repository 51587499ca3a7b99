// ABOUTME: Chat log storage and analytics queries for SQLite
// ABOUTME: Every answered query is recorded; analytics aggregate over the table
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/harper/faqbot/internal/models"
)

// MostAskedLimit caps the most-asked list in analytics
const MostAskedLimit = 5

// ChatLogStore handles chat log persistence
type ChatLogStore struct {
	db *DB
}

// NewChatLogStore creates a new ChatLogStore
func NewChatLogStore(db *DB) *ChatLogStore {
	return &ChatLogStore{db: db}
}

// Save records one interaction
func (s *ChatLogStore) Save(ctx context.Context, entry models.ChatLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_logs (id, query, answer, source, confidence, session_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Query, entry.Answer, string(entry.Source), entry.Confidence, entry.SessionID, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save chat log: %w", err)
	}
	return nil
}

// List returns logs oldest first. limit > 0 keeps only the most recent limit entries.
func (s *ChatLogStore) List(ctx context.Context, limit int) ([]models.ChatLog, error) {
	query := `
		SELECT id, query, answer, source, confidence, session_id, created_at
		FROM chat_logs
		ORDER BY rowid ASC`
	args := []any{}
	if limit > 0 {
		query = `
			SELECT id, query, answer, source, confidence, session_id, created_at
			FROM (SELECT rowid AS seq, * FROM chat_logs ORDER BY rowid DESC LIMIT ?)
			ORDER BY seq ASC`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	logs := []models.ChatLog{}
	for rows.Next() {
		var (
			entry     models.ChatLog
			source    string
			sessionID sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.Query, &entry.Answer, &source, &entry.Confidence, &sessionID, &entry.Timestamp); err != nil {
			return nil, err
		}
		entry.Source = models.Source(source)
		entry.SessionID = sessionID.String
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// Analytics aggregates totals, source split, most asked queries and mean confidence.
// Ties in the most-asked list keep the order in which queries were first asked.
func (s *ChatLogStore) Analytics(ctx context.Context) (*models.Analytics, error) {
	a := &models.Analytics{MostAsked: []models.QueryCount{}}

	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN source = 'faq' THEN 1 ELSE 0 END), 0),
		       AVG(confidence)
		FROM chat_logs
	`).Scan(&a.TotalChats, &a.FAQUsage, &avg)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate chat logs: %w", err)
	}
	a.AIFallbackUsage = a.TotalChats - a.FAQUsage
	if avg.Valid {
		a.AvgConfidence = math.Round(avg.Float64*100) / 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT query, COUNT(*) AS n, MIN(rowid) AS first_seen
		FROM chat_logs
		GROUP BY query
		ORDER BY n DESC, first_seen ASC
		LIMIT ?
	`, MostAskedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank queries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			qc        models.QueryCount
			firstSeen int64
		)
		if err := rows.Scan(&qc.Query, &qc.Count, &firstSeen); err != nil {
			return nil, err
		}
		a.MostAsked = append(a.MostAsked, qc)
	}
	return a, rows.Err()
}
