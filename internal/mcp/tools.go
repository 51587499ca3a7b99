// ABOUTME: MCP tool definitions and registration for the FAQ server
// ABOUTME: Exposes answering, corpus management, analytics and feedback to agents
package mcp

import (
	"github.com/harper/faqbot/internal/core"
	"github.com/harper/faqbot/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.Storage, engine *core.Engine) *Handlers {
	handlers := NewHandlers(store, engine)

	// 1. ask_faq - answer a question from the FAQ corpus or the AI fallback
	server.AddTool(mcp.Tool{
		Name:        "ask_faq",
		Description: "Answer a question from the FAQ corpus, falling back to the AI assistant when no FAQ matches well enough. Pass the returned session_id to keep conversational context.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The user's question",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional conversation id; a new one is created when omitted",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskFAQ)

	// 2. list_faqs - list the corpus
	server.AddTool(mcp.Tool{
		Name:        "list_faqs",
		Description: "List every stored FAQ in corpus order.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListFAQs)

	// 3. add_faq
	server.AddTool(mcp.Tool{
		Name:        "add_faq",
		Description: "Add a question/answer pair to the FAQ corpus. The index is rebuilt immediately.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question text",
				},
				"answer": map[string]interface{}{
					"type":        "string",
					"description": "Answer text",
				},
			},
			Required: []string{"question", "answer"},
		},
	}, handlers.AddFAQ)

	// 4. update_faq
	server.AddTool(mcp.Tool{
		Name:        "update_faq",
		Description: "Replace the question and answer of an existing FAQ.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "FAQ id",
				},
				"question": map[string]interface{}{
					"type":        "string",
					"description": "New question text",
				},
				"answer": map[string]interface{}{
					"type":        "string",
					"description": "New answer text",
				},
			},
			Required: []string{"id", "question", "answer"},
		},
	}, handlers.UpdateFAQ)

	// 5. delete_faq
	server.AddTool(mcp.Tool{
		Name:        "delete_faq",
		Description: "Delete an FAQ by id.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "FAQ id",
				},
			},
			Required: []string{"id"},
		},
	}, handlers.DeleteFAQ)

	// 6. get_analytics
	server.AddTool(mcp.Tool{
		Name:        "get_analytics",
		Description: "Summarize logged interactions: totals, FAQ vs AI usage, most asked questions, average confidence and feedback.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetAnalytics)

	// 7. submit_feedback
	server.AddTool(mcp.Tool{
		Name:        "submit_feedback",
		Description: "Record whether an answer to a question was helpful.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The question that was answered",
				},
				"is_positive": map[string]interface{}{
					"type":        "boolean",
					"description": "true when the answer helped",
				},
			},
			Required: []string{"query", "is_positive"},
		},
	}, handlers.SubmitFeedback)

	return handlers
}
