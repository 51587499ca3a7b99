// ABOUTME: FAQ represents a stored question/answer pair in the corpus
// ABOUTME: Entries are matched against incoming queries by the answer engine
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FAQ is a single question/answer pair
type FAQ struct {
	ID        string    `json:"id" yaml:"id"`
	Question  string    `json:"question" yaml:"question"`
	Answer    string    `json:"answer" yaml:"answer"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewFAQ creates a new FAQ with a generated ID after validating its fields
func NewFAQ(question, answer string) (*FAQ, error) {
	now := time.Now().UTC()
	faq := &FAQ{
		ID:        uuid.New().String(),
		Question:  strings.TrimSpace(question),
		Answer:    strings.TrimSpace(answer),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := faq.Validate(); err != nil {
		return nil, err
	}
	return faq, nil
}

// Validate checks that the FAQ has usable content
func (f *FAQ) Validate() error {
	if f.ID == "" {
		return errors.New("faq ID cannot be empty")
	}
	if strings.TrimSpace(f.Question) == "" {
		return errors.New("question cannot be empty")
	}
	if strings.TrimSpace(f.Answer) == "" {
		return fmt.Errorf("answer cannot be empty for question %q", f.Question)
	}
	return nil
}

// Questions extracts the question texts in corpus order
func Questions(faqs []FAQ) []string {
	questions := make([]string, len(faqs))
	for i, faq := range faqs {
		questions[i] = faq.Question
	}
	return questions
}
