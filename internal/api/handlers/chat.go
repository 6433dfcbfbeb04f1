package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pro-joshi-grammer/sahayatha/internal/api"
	"github.com/pro-joshi-grammer/sahayatha/internal/api/middleware"
	"github.com/pro-joshi-grammer/sahayatha/internal/chat"
	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// ChatOrchestrator runs one chat turn.
type ChatOrchestrator interface {
	HandleChat(ctx context.Context, req chat.Request) domain.Envelope
}

type ChatHandler struct {
	orch ChatOrchestrator
}

func NewChatHandler(orch ChatOrchestrator) *ChatHandler {
	return &ChatHandler{orch: orch}
}

type ChatRequest struct {
	Message        string `json:"message"`
	TargetLanguage string `json:"target_language"`
	Mode           string `json:"mode"`
}

// ChatResponse is the front end's envelope. Failures keep ok=false with a
// user-safe error; the UI parses this shape unconditionally.
type ChatResponse struct {
	OK           bool             `json:"ok"`
	BotReply     string           `json:"bot_reply,omitempty"`
	ResponseType string           `json:"response_type,omitempty"`
	Data         *domain.BillView `json:"data,omitempty"`
	AudioURL     string           `json:"audio_url,omitempty"`
	Error        string           `json:"error,omitempty"`
}

func envelopeToChatResponse(env domain.Envelope) ChatResponse {
	resp := ChatResponse{
		OK:       env.OK,
		AudioURL: env.AudioRef,
		Error:    env.Error,
	}
	switch env.Kind {
	case domain.KindStructuredBill:
		resp.ResponseType = string(domain.KindStructuredBill)
		resp.Data = env.Bill
	case domain.KindText:
		resp.ResponseType = string(domain.KindText)
		resp.BotReply = env.BotReply
	}
	return resp
}

// HandleChat handles POST /api/chat. Pipeline failures stay HTTP 200 with
// ok=false; only an unreadable request is a 200 envelope too, so the client
// never has to branch on status codes here.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.JSON(w, http.StatusOK, ChatResponse{OK: false, Error: "invalid request body"})
		return
	}

	env := h.orch.HandleChat(r.Context(), chat.Request{
		SessionID:      middleware.GetSessionID(r.Context()),
		Message:        req.Message,
		TargetLanguage: req.TargetLanguage,
		Mode:           req.Mode,
	})

	api.JSON(w, http.StatusOK, envelopeToChatResponse(env))
}
