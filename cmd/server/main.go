// ABOUTME: Standalone MCP server for faqbot with stdio transport
// ABOUTME: Loads configuration, opens storage, and registers the FAQ tools
package main

import (
	"context"

	"github.com/harper/faqbot/internal/app"
	"github.com/harper/faqbot/internal/config"
	"github.com/harper/faqbot/internal/logging"
	"github.com/harper/faqbot/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// logs go to stderr, stdout carries the protocol
	closer := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer closer.Close()

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize faqbot: %v", err)
	}
	defer a.Close()

	server := mcpserver.NewMCPServer("faqbot", "0.1.0")
	mcp.RegisterTools(server, a.Storage, a.Engine)

	log.Info("faqbot MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Errorf("Server error: %v", err)
	}
}
