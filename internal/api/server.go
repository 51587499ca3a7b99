// ABOUTME: HTTP API for chat, FAQ management, analytics, import/export and metrics
// ABOUTME: Gin router with logrus request logging and panic recovery
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harper/faqbot/internal/core"
	"github.com/harper/faqbot/internal/logging"
	"github.com/harper/faqbot/internal/metrics"
	"github.com/harper/faqbot/internal/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// SessionCookie names the cookie that carries the conversation id
const SessionCookie = "faqbot_session"

// Server serves the FAQ bot over HTTP
type Server struct {
	store  *storage.Storage
	engine *core.Engine
	router *gin.Engine
	http   *http.Server
}

// NewServer builds the router. addr is used by ListenAndServe.
func NewServer(addr string, store *storage.Storage, engine *core.Engine) *Server {
	s := &Server{store: store, engine: engine}
	s.router = s.routes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogrusLogger(), logging.GinLogrusRecovery())

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.POST("/chat", s.chat)
	api.POST("/feedback", s.feedback)
	api.GET("/faqs", s.listFAQs)
	api.POST("/faqs", s.addFAQ)
	api.PUT("/faqs/:id", s.updateFAQ)
	api.DELETE("/faqs/:id", s.deleteFAQ)
	api.POST("/faqs/refresh", s.refresh)
	api.GET("/analytics", s.analytics)
	api.POST("/import", s.importFAQs)
	api.GET("/export", s.exportFAQs)
	return r
}

// ListenAndServe serves until ctx is cancelled, then drains for up to 10s
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.http.Addr).Info("http server listening")
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("http server shutting down")
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"faqs":     s.engine.CorpusSize(),
		"sessions": s.engine.Memory().Len(),
	})
}
