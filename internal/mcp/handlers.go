// ABOUTME: MCP tool handler implementations for the FAQ server
// ABOUTME: Bad input and storage failures become tool errors, never protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/harper/faqbot/internal/core"
	"github.com/harper/faqbot/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	log "github.com/sirupsen/logrus"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage *storage.Storage
	engine  *core.Engine
}

// NewHandlers creates handlers over the store and engine
func NewHandlers(store *storage.Storage, engine *core.Engine) *Handlers {
	return &Handlers{storage: store, engine: engine}
}

// AskFAQ handles the ask_faq tool
func (h *Handlers) AskFAQ(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	sessionID := request.GetString("session_id", "")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	answer := h.engine.Answer(ctx, question, sessionID)
	log.WithFields(log.Fields{
		"source":     answer.Source,
		"confidence": answer.Confidence,
		"session_id": sessionID,
	}).Debug("mcp ask_faq answered")

	return jsonResult(map[string]interface{}{
		"answer":          answer.Text,
		"source":          answer.Source,
		"confidence":      math.Round(answer.Confidence*100) / 100,
		"session_id":      sessionID,
		"matched_faq_id":  answer.MatchedFAQID,
		"fallback_failed": answer.FallbackFailed,
	})
}

// ListFAQs handles the list_faqs tool
func (h *Handlers) ListFAQs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	faqs, err := h.storage.ListFAQs(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list faqs: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"faqs":  faqs,
		"count": len(faqs),
	})
}

// AddFAQ handles the add_faq tool
func (h *Handlers) AddFAQ(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	answer, err := request.RequireString("answer")
	if err != nil {
		return mcp.NewToolResultError("answer argument is required and must be a string"), nil
	}

	faq, err := h.storage.AddFAQ(ctx, question, answer)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add faq: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"success": true,
		"faq":     faq,
	})
}

// UpdateFAQ handles the update_faq tool
func (h *Handlers) UpdateFAQ(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id argument is required and must be a string"), nil
	}
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	answer, err := request.RequireString("answer")
	if err != nil {
		return mcp.NewToolResultError("answer argument is required and must be a string"), nil
	}

	faq, err := h.storage.UpdateFAQ(ctx, id, question, answer)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("faq %s not found", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update faq: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"success": true,
		"faq":     faq,
	})
}

// DeleteFAQ handles the delete_faq tool
func (h *Handlers) DeleteFAQ(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id argument is required and must be a string"), nil
	}

	err = h.storage.DeleteFAQ(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("faq %s not found", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete faq: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"success": true,
		"id":      id,
	})
}

// GetAnalytics handles the get_analytics tool
func (h *Handlers) GetAnalytics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.storage.Analytics(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute analytics: %v", err)), nil
	}
	return jsonResult(stats)
}

// SubmitFeedback handles the submit_feedback tool
func (h *Handlers) SubmitFeedback(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	positive, err := request.RequireBool("is_positive")
	if err != nil {
		return mcp.NewToolResultError("is_positive argument is required and must be a boolean"), nil
	}

	fb, err := h.storage.AddFeedback(ctx, query, positive)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save feedback: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"success":  true,
		"feedback": fb,
	})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
