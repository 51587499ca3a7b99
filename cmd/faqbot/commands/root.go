// ABOUTME: Root command, global flags and shared setup for the faqbot CLI
// ABOUTME: Loads .env and configuration and initializes logging before any subcommand runs
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/harper/faqbot/internal/app"
	"github.com/harper/faqbot/internal/config"
	"github.com/harper/faqbot/internal/logging"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string

	logCloser io.Closer
)

const banner = `
███████╗ █████╗  ██████╗ ██████╗  ██████╗ ████████╗
██╔════╝██╔══██╗██╔═══██╗██╔══██╗██╔═══██╗╚══██╔══╝
█████╗  ███████║██║   ██║██████╔╝██║   ██║   ██║
██╔══╝  ██╔══██║██║▄▄ ██║██╔══██╗██║   ██║   ██║
██║     ██║  ██║╚██████╔╝██████╔╝╚██████╔╝   ██║
╚═╝     ╚═╝  ╚═╝ ╚══▀▀═╝ ╚═════╝  ╚═════╝    ╚═╝
`

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faqbot",
		Short: "FAQ answering service with an AI fallback",
		Long: banner + `
faqbot answers questions from a curated FAQ corpus using TF-IDF
similarity. When no stored question is close enough, it asks an
OpenAI-compatible chat model (Groq by default), keeping a short
per-session conversation history.

Every interaction is logged for analytics. The corpus can be managed
from the CLI, the HTTP API or over MCP, and backed up to Charm cloud.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, json, table")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewServeCmd(),
		NewAskCmd(),
		NewFAQCmd(),
		NewImportCmd(),
		NewExportCmd(),
		NewAnalyticsCmd(),
		NewFeedbackCmd(),
		NewMCPCmd(),
		NewSyncCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	// a missing .env is normal in production
	_ = godotenv.Load()

	if !containsString([]string{"auto", "json", "table"}, outputFormat) {
		return fmt.Errorf("unknown --format %q (use auto, json or table)", outputFormat)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "quiet"
	}
	logCloser = logging.Setup(logging.Options{Level: level, File: cfg.LogFile})
	return nil
}

// loadApp builds the application from configuration
func loadApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.WithField("db", a.Storage.Path()).Debug("opened faqbot storage")
	return a, nil
}

// jsonOutput reports whether results should be printed as JSON
func jsonOutput() bool {
	return outputFormat == "json"
}
