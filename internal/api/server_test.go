// ABOUTME: HTTP API tests using httptest and testify
// ABOUTME: Covers chat sessions, FAQ CRUD, analytics, import/export and metrics
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harper/faqbot/internal/app"
	"github.com/harper/faqbot/internal/config"
	"github.com/harper/faqbot/internal/models"
	"github.com/harper/faqbot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	reply string
}

func (s *stubLLM) Complete(ctx context.Context, messages []models.Message) (string, error) {
	return s.reply, nil
}

func newTestServer(t *testing.T) (*Server, *app.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewStorageInMemory()
	require.NoError(t, err)
	a, err := app.NewWithStorage(context.Background(), config.Default(), store, &stubLLM{reply: "model reply"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return NewServer(":0", a.Storage, a.Engine), a
}

func doJSON(t *testing.T, s *Server, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestChat_FAQAnswer(t *testing.T) {
	s, a := newTestServer(t)
	_, err := a.Storage.AddFAQ(context.Background(), "What are your opening hours?", "9 to 5 on weekdays")
	require.NoError(t, err)

	w := doJSON(t, s, http.MethodPost, "/api/chat", map[string]string{"message": "what are your opening hours"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "9 to 5 on weekdays", resp.Answer)
	assert.Equal(t, "faq", resp.Source)
	assert.Equal(t, 1.0, resp.Confidence)
	assert.NotEmpty(t, resp.SessionID)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, resp.SessionID, cookie.Value)
}

func TestChat_FallbackAndSessionFromCookie(t *testing.T) {
	s, a := newTestServer(t)

	first := doJSON(t, s, http.MethodPost, "/api/chat", map[string]string{"message": "Can I bring my dog?"})
	require.Equal(t, http.StatusOK, first.Code)
	var resp chatResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &resp))
	assert.Equal(t, "ai", resp.Source)
	assert.Equal(t, "model reply", resp.Answer)

	cookie := sessionCookie(first)
	require.NotNil(t, cookie)

	second := doJSON(t, s, http.MethodPost, "/api/chat", map[string]string{"message": "And my cat?"}, cookie)
	var resp2 chatResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp2))
	assert.Equal(t, resp.SessionID, resp2.SessionID)
	assert.Len(t, a.Memory.History(resp.SessionID), 4)
}

func TestChat_BodySessionWins(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/chat",
		map[string]string{"message": "hi", "session_id": "from-body"},
		&http.Cookie{Name: SessionCookie, Value: "from-cookie"})

	var resp chatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "from-body", resp.SessionID)
}

func TestChat_BadRequests(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/chat", map[string]string{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFAQCrud(t *testing.T) {
	s, a := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/faqs", faqRequest{Question: "Where are you?", Answer: "Berlin"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.FAQ
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, a.Engine.CorpusSize())

	w = doJSON(t, s, http.MethodPut, "/api/faqs/"+created.ID, faqRequest{Question: "Where are you based?", Answer: "Hamburg"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hamburg")

	w = doJSON(t, s, http.MethodGet, "/api/faqs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.FAQ
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Where are you based?", list[0].Question)

	w = doJSON(t, s, http.MethodDelete, "/api/faqs/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, a.Engine.CorpusSize())
}

func TestFAQCrud_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"add missing answer", http.MethodPost, "/api/faqs", faqRequest{Question: "q"}, http.StatusBadRequest},
		{"update unknown", http.MethodPut, "/api/faqs/nope", faqRequest{Question: "q", Answer: "a"}, http.StatusNotFound},
		{"update blank", http.MethodPut, "/api/faqs/nope", faqRequest{Question: "q"}, http.StatusBadRequest},
		{"delete unknown", http.MethodDelete, "/api/faqs/nope", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestFeedbackAndAnalytics(t *testing.T) {
	s, a := newTestServer(t)
	_, err := a.Storage.AddFAQ(context.Background(), "What are your opening hours?", "9 to 5")
	require.NoError(t, err)

	doJSON(t, s, http.MethodPost, "/api/chat", map[string]string{"message": "What are your opening hours?"})
	doJSON(t, s, http.MethodPost, "/api/chat", map[string]string{"message": "What are your opening hours?"})
	doJSON(t, s, http.MethodPost, "/api/chat", map[string]string{"message": "Can I bring my dog?"})

	w := doJSON(t, s, http.MethodPost, "/api/feedback", map[string]any{"query": "Can I bring my dog?", "is_positive": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/feedback", map[string]any{"query": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats models.Analytics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalChats)
	assert.Equal(t, 2, stats.FAQUsage)
	assert.Equal(t, 1, stats.AIFallbackUsage)
	assert.Equal(t, 0.67, stats.AvgConfidence)
	require.NotEmpty(t, stats.MostAsked)
	assert.Equal(t, models.QueryCount{Query: "What are your opening hours?", Count: 2}, stats.MostAsked[0])
	assert.Equal(t, 1, stats.PositiveRatings)
}

func TestImportExportCSV(t *testing.T) {
	s, a := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "faqs.csv")
	require.NoError(t, err)
	_, _ = part.Write([]byte("question,answer\nWhat are your hours?,9 to 5\n,skipped\nWhere are you?,Berlin\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"imported":2`)
	assert.Equal(t, 2, a.Engine.CorpusSize())

	w = doJSON(t, s, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "question,answer\nWhat are your hours?,9 to 5\nWhere are you?,Berlin\n", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "faqs.csv")
}

func TestImportRawYAMLAndExportYAML(t *testing.T) {
	s, a := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/import",
		strings.NewReader("faqs:\n  - question: Where are you?\n    answer: Berlin\n"))
	req.Header.Set("Content-Type", "application/yaml")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, a.Engine.CorpusSize())

	w = doJSON(t, s, http.MethodGet, "/api/export?format=yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "question: Where are you?")

	w = doJSON(t, s, http.MethodGet, "/api/export?format=xml", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportOwnYAMLExportAppends(t *testing.T) {
	s, a := newTestServer(t)
	_, err := a.Storage.AddFAQ(context.Background(), "Where are you?", "Berlin")
	require.NoError(t, err)

	w := doJSON(t, s, http.MethodGet, "/api/export?format=yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(w.Body.String()))
	req.Header.Set("Content-Type", "application/yaml")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2, a.Engine.CorpusSize())
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/api/chat", map[string]string{"message": "hello"})

	w := doJSON(t, s, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "faqbot_answers_total")
	assert.Contains(t, w.Body.String(), "faqbot_http_requests_total")
}
