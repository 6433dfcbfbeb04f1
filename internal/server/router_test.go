package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pro-joshi-grammer/sahayatha/internal/api/handlers"
	"github.com/pro-joshi-grammer/sahayatha/internal/chat"
	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
	"github.com/pro-joshi-grammer/sahayatha/internal/tickets"
)

type stubOrchestrator struct {
	env domain.Envelope
	got chat.Request
}

func (s *stubOrchestrator) HandleChat(_ context.Context, req chat.Request) domain.Envelope {
	s.got = req
	return s.env
}

type stubTranscriber struct{}

func (stubTranscriber) Transcribe(context.Context, io.Reader, string, string) (string, string, error) {
	return "hello", "en", nil
}

type stubSynthesizer struct{}

func (stubSynthesizer) Synthesize(context.Context, string, string) (string, error) {
	return "/audio/tts_stub.mp3", nil
}

type stubTicketService struct {
	created tickets.CreateInput
}

func (s *stubTicketService) Create(_ context.Context, input tickets.CreateInput) (*domain.Ticket, error) {
	s.created = input
	now := time.Now().UTC()
	return &domain.Ticket{
		ID: 1, PublicID: "APP-000001", Type: domain.TicketTypeScheme,
		Title: input.Title, Status: domain.StatusInReview,
		CreatedAt: now, UpdatedAt: now,
	}, nil
}

func (s *stubTicketService) List(context.Context, string) ([]domain.Ticket, error) {
	return []domain.Ticket{}, nil
}

func (s *stubTicketService) UpdateStatus(context.Context, string, string) (*domain.Ticket, error) {
	return nil, domain.ErrTicketNotFound
}

type stubOTPService struct{}

func (stubOTPService) Send(context.Context, string) error { return nil }
func (stubOTPService) Verify(context.Context, string, string) (bool, error) {
	return true, nil
}

func setupRouter(t *testing.T) (http.Handler, *stubOrchestrator, string) {
	t.Helper()

	audioDir := t.TempDir()
	orch := &stubOrchestrator{env: domain.TextEnvelope("hi")}

	router := NewRouter(RouterConfig{
		ChatHandler:      handlers.NewChatHandler(orch),
		VoiceHandler:     handlers.NewVoiceHandler(stubTranscriber{}, 1<<20),
		TTSHandler:       handlers.NewTTSHandler(stubSynthesizer{}),
		TicketHandler:    handlers.NewTicketHandler(&stubTicketService{}),
		ComplaintHandler: handlers.NewComplaintHandler(&stubTicketService{}, nil),
		OTPHandler:       handlers.NewOTPHandler(stubOTPService{}),
		AudioDir:         audioDir,
		AllowedOrigin:    "*",
		MaxBodyBytes:     1 << 20,
	})
	return router, orch, audioDir
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "ok", data["status"])
}

func TestRouter_ChatAttachesSessionID(t *testing.T) {
	router, orch, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("X-Session-Id", "session-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "session-42", orch.got.SessionID)
	assert.Equal(t, "session-42", w.Header().Get("X-Session-Id"))
}

func TestRouter_ChatGeneratesSessionIDWhenMissing(t *testing.T) {
	router, orch, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, orch.got.SessionID)
	assert.Equal(t, orch.got.SessionID, w.Header().Get("X-Session-Id"))
}

func TestRouter_ApplyRoute(t *testing.T) {
	router, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/apply", strings.NewReader(
		`{"type":"scheme","title":"Pension Scheme","details":"old age pension","department":"Revenue"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"ticket_id":"APP-000001"`)
}

func TestRouter_UpdateStatusRouteMapsNotFound(t *testing.T) {
	router, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/applications/APP-000099/status", strings.NewReader(`{"status":"Approved"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ServesSynthesizedAudio(t *testing.T) {
	router, _, audioDir := setupRouter(t)

	content := []byte("mp3-bytes")
	require.NoError(t, os.WriteFile(filepath.Join(audioDir, "tts_abc.mp3"), content, 0o644))

	req := httptest.NewRequest(http.MethodGet, "/audio/tts_abc.mp3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
}

func TestRouter_RejectsOversizedBody(t *testing.T) {
	router, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
	req.ContentLength = 2 << 20
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
