// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents like Claude ask and curate the FAQ corpus via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/faqbot/internal/app"
	"github.com/harper/faqbot/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs faqbot as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to ask questions, manage FAQ entries and read
analytics via stdio.

Configure in Claude Desktop's config file to enable the FAQ tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  faqbot mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "faqbot": {
  #       "command": "faqbot",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}

	server := newMCPServer(a)

	log.WithField("faqs", a.Engine.CorpusSize()).Info("faqbot MCP server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		if err := a.Close(); err != nil {
			log.WithError(err).Warn("error closing storage")
		}
	case err := <-serverErr:
		_ = a.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}

// newMCPServer builds the stdio server with every FAQ tool registered
func newMCPServer(a *app.App) *mcpserver.MCPServer {
	server := mcpserver.NewMCPServer("faqbot", versionInfo.Version)
	mcp.RegisterTools(server, a.Storage, a.Engine)
	return server
}
