// ABOUTME: Gin handlers for the FAQ bot HTTP API
// ABOUTME: JSON in and out; storage sentinels map onto 400 and 404
package api

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harper/faqbot/internal/storage"
	log "github.com/sirupsen/logrus"
)

const sessionMaxAge = 30 * 24 * 60 * 60

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Answer     string  `json:"answer"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
	SessionID  string  `json:"session_id"`
}

type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type feedbackRequest struct {
	Query      string `json:"query"`
	IsPositive *bool  `json:"is_positive"`
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// sessionID picks the body value, then the cookie, then mints a new id.
// The chosen id is always written back as the cookie.
func sessionID(c *gin.Context, fromBody string) string {
	id := strings.TrimSpace(fromBody)
	if id == "" {
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			id = cookie
		}
	}
	if id == "" {
		id = uuid.New().String()
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, sessionMaxAge, "/", "", false, true)
	return id
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		errorJSON(c, http.StatusBadRequest, "message is required")
		return
	}

	sid := sessionID(c, req.SessionID)
	answer := s.engine.Answer(c.Request.Context(), req.Message, sid)

	c.JSON(http.StatusOK, chatResponse{
		Answer:     answer.Text,
		Source:     string(answer.Source),
		Confidence: math.Round(answer.Confidence*100) / 100,
		SessionID:  sid,
	})
}

func (s *Server) feedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.IsPositive == nil {
		errorJSON(c, http.StatusBadRequest, "is_positive is required")
		return
	}
	if _, err := s.store.AddFeedback(c.Request.Context(), req.Query, *req.IsPositive); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Server) listFAQs(c *gin.Context) {
	faqs, err := s.store.ListFAQs(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, faqs)
}

func (s *Server) addFAQ(c *gin.Context) {
	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid JSON body")
		return
	}
	faq, err := s.store.AddFAQ(c.Request.Context(), req.Question, req.Answer)
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusCreated, faq)
}

func (s *Server) updateFAQ(c *gin.Context) {
	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid JSON body")
		return
	}
	faq, err := s.store.UpdateFAQ(c.Request.Context(), c.Param("id"), req.Question, req.Answer)
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, faq)
}

func (s *Server) deleteFAQ(c *gin.Context) {
	if err := s.store.DeleteFAQ(c.Request.Context(), c.Param("id")); err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// refresh forces a reload; mutations through the API already trigger one
func (s *Server) refresh(c *gin.Context) {
	if err := s.engine.Refresh(c.Request.Context()); err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "faqs": s.engine.CorpusSize()})
}

func (s *Server) analytics(c *gin.Context) {
	stats, err := s.store.Analytics(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// importFAQs accepts a multipart "file" upload or a raw body. YAML is detected
// from the file extension or content type; anything else is read as CSV.
func (s *Server) importFAQs(c *gin.Context) {
	var (
		body     io.Reader = c.Request.Body
		filename string
	)
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			errorJSON(c, http.StatusBadRequest, "unreadable upload")
			return
		}
		defer func() { _ = f.Close() }()
		body, filename = f, fh.Filename
	}

	var (
		n   int
		err error
	)
	if isYAML(filename, c.ContentType()) {
		n, err = s.store.ImportYAML(c.Request.Context(), body)
	} else {
		n, err = s.store.ImportCSV(c.Request.Context(), body)
	}
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "imported": n})
}

func (s *Server) exportFAQs(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	ctx := c.Request.Context()

	switch format {
	case "csv":
		c.Header("Content-Disposition", `attachment; filename="faqs.csv"`)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := s.store.ExportCSV(ctx, c.Writer); err != nil {
			log.WithError(err).Error("csv export failed")
		}
	case "yaml":
		c.Header("Content-Disposition", `attachment; filename="faqs.yaml"`)
		c.Header("Content-Type", "application/yaml")
		c.Status(http.StatusOK)
		if err := s.store.ExportYAML(ctx, c.Writer); err != nil {
			log.WithError(err).Error("yaml export failed")
		}
	default:
		errorJSON(c, http.StatusBadRequest, fmt.Sprintf("unknown format %q (use csv or yaml)", format))
	}
}

func isYAML(filename, contentType string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return true
	}
	return strings.Contains(contentType, "yaml")
}

func (s *Server) storageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		errorJSON(c, http.StatusNotFound, "faq not found")
	case errors.Is(err, storage.ErrInvalidFAQ):
		errorJSON(c, http.StatusBadRequest, err.Error())
	default:
		s.internalError(c, err)
	}
}

func (s *Server) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	errorJSON(c, http.StatusInternalServerError, "internal error")
}
