package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pro-joshi-grammer/sahayatha/internal/chat"
	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

type stubOrchestrator struct {
	env domain.Envelope
	got chat.Request
}

func (s *stubOrchestrator) HandleChat(_ context.Context, req chat.Request) domain.Envelope {
	s.got = req
	return s.env
}

func TestHandleChat_TextEnvelope(t *testing.T) {
	orch := &stubOrchestrator{env: domain.TextEnvelope("Visit the ward office.")}
	h := NewChatHandler(orch)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(
		`{"message":"how do I get a birth certificate","target_language":"Telugu","mode":"voice"}`))
	rec := httptest.NewRecorder()
	h.HandleChat(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"response_type":"text","bot_reply":"Visit the ward office."}`, rec.Body.String())
	assert.Equal(t, "how do I get a birth certificate", orch.got.Message)
	assert.Equal(t, "Telugu", orch.got.TargetLanguage)
	assert.Equal(t, "voice", orch.got.Mode)
}

func TestHandleChat_BillEnvelope(t *testing.T) {
	bill := &domain.BillView{BillID: "PT-2025-0042", Title: "Property Tax", Name: "Demo Citizen", Phone: "9876543210", Amount: "4850", Status: domain.BillUnpaid, DueDate: "2026-09-30"}
	orch := &stubOrchestrator{env: domain.BillEnvelope(bill)}
	h := NewChatHandler(orch)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"property tax"}`))
	rec := httptest.NewRecorder()
	h.HandleChat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"response_type":"bill_details"`)
	assert.Contains(t, body, `"bill_id":"PT-2025-0042"`)
	assert.NotContains(t, body, `"bot_reply"`)
}

func TestHandleChat_FailureStaysHTTP200(t *testing.T) {
	orch := &stubOrchestrator{env: domain.FailedEnvelope("The assistant is busy. Please try again.")}
	h := NewChatHandler(orch)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"anything"}`))
	rec := httptest.NewRecorder()
	h.HandleChat(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"The assistant is busy. Please try again."}`, rec.Body.String())
}

func TestHandleChat_MalformedBodyStaysHTTP200(t *testing.T) {
	h := NewChatHandler(&stubOrchestrator{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.HandleChat(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":false`)
}

func TestHandleChat_VoiceEnvelopeCarriesAudioURL(t *testing.T) {
	env := domain.TextEnvelope("answer")
	env.AudioRef = "/audio/tts_abc.mp3"
	h := NewChatHandler(&stubOrchestrator{env: env})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"q","mode":"voice"}`))
	rec := httptest.NewRecorder()
	h.HandleChat(rec, req)

	assert.Contains(t, rec.Body.String(), `"audio_url":"/audio/tts_abc.mp3"`)
}
