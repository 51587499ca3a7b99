// ABOUTME: ChatLog and Feedback records written for every interaction
// ABOUTME: Analytics aggregates are computed from the chat log table
package models

import "time"

// ChatLog records one answered query
type ChatLog struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Query      string    `json:"query"`
	Answer     string    `json:"answer"`
	Source     Source    `json:"source"`
	Confidence float64   `json:"confidence"`
	SessionID  string    `json:"session_id"`
}

// NewChatLog builds a log record from an answer
func NewChatLog(query string, answer Answer) ChatLog {
	return ChatLog{
		ID:         generateID("log"),
		Timestamp:  time.Now().UTC(),
		Query:      query,
		Answer:     answer.Text,
		Source:     answer.Source,
		Confidence: answer.Confidence,
		SessionID:  answer.SessionID,
	}
}

// Feedback is a thumbs up/down on an answered query
type Feedback struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Query      string    `json:"query"`
	IsPositive bool      `json:"is_positive"`
}

// NewFeedback creates a feedback record stamped with the current time
func NewFeedback(query string, isPositive bool) Feedback {
	return Feedback{
		ID:         generateID("fb"),
		Timestamp:  time.Now().UTC(),
		Query:      query,
		IsPositive: isPositive,
	}
}

// QueryCount is how often a query text was asked
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// Analytics summarizes the chat log
type Analytics struct {
	TotalChats      int          `json:"total_chats"`
	FAQUsage        int          `json:"faq_usage"`
	AIFallbackUsage int          `json:"ai_fallback_usage"`
	MostAsked       []QueryCount `json:"most_asked"`
	AvgConfidence   float64      `json:"avg_confidence"`
	PositiveRatings int          `json:"positive_feedback"`
	NegativeRatings int          `json:"negative_feedback"`
}
