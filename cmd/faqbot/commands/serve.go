// ABOUTME: Serve command runs the HTTP chat API with Prometheus metrics
// ABOUTME: Runs the listener and a session gauge sampler under one errgroup
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harper/faqbot/internal/api"
	"github.com/harper/faqbot/internal/core"
	"github.com/harper/faqbot/internal/metrics"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const sessionSampleInterval = 15 * time.Second

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP chat API",
		Long: `Run the HTTP chat API.

Serves POST /api/chat, FAQ management under /api/faqs, analytics,
CSV/YAML import and export, /healthz and Prometheus /metrics.`,
		Example: `  faqbot serve
  faqbot serve --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from FAQBOT_LISTEN_ADDR)")

	return cmd
}

func runServe(addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if addr == "" {
		addr = a.Config.ListenAddr
	}
	server := api.NewServer(addr, a.Storage, a.Engine)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(gctx)
	})
	g.Go(func() error {
		sampleSessions(gctx, a.Memory, sessionSampleInterval)
		return nil
	})

	err = g.Wait()
	log.Info("server stopped")
	return err
}

// sampleSessions keeps the active sessions gauge current as sessions expire
func sampleSessions(ctx context.Context, memory *core.ConversationMemory, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.SetSessions(memory.Len())
		}
	}
}
