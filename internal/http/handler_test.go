package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"nutribot_backend/internal/transport"
	"nutribot_backend/platform/logger"
)

type stubDispatcher struct {
	event     transport.InboundEvent
	responses []transport.Response
}

func (s *stubDispatcher) Handle(_ context.Context, event transport.InboundEvent) []transport.Response {
	s.event = event
	return s.responses
}

type stubHealth struct {
	err error
}

func (s *stubHealth) Ping(_ context.Context) error { return s.err }

func newTestHandler(dispatcher Dispatcher, health HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(dispatcher, health, logger.New("test"))
	r := gin.New()
	r.POST("/v1/events", h.HandleEvent)
	r.GET("/healthz", h.Healthz)
	return r
}

func TestHandleEvent_DispatchesAndReturnsReplies(t *testing.T) {
	dispatcher := &stubDispatcher{responses: []transport.Response{{Text: "saved"}}}
	r := newTestHandler(dispatcher, &stubHealth{})

	body := `{"sender_id": 42, "text": "/weight", "username": "sam"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if dispatcher.event.SenderID != 42 || dispatcher.event.Text != "/weight" {
		t.Fatalf("unexpected dispatched event: %+v", dispatcher.event)
	}

	var resp EventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Responses) != 1 || resp.Responses[0].Text != "saved" {
		t.Fatalf("unexpected responses: %+v", resp.Responses)
	}
}

func TestHandleEvent_RejectsMissingSender(t *testing.T) {
	r := newTestHandler(&stubDispatcher{}, &stubHealth{})

	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(`{"text": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleEvent_RejectsMalformedJSON(t *testing.T) {
	r := newTestHandler(&stubDispatcher{}, &stubHealth{})

	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(`{"sender_id": `))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	health := &stubHealth{}
	r := newTestHandler(&stubDispatcher{}, health)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	health.err = errors.New("pool exhausted")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
