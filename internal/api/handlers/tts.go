package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pro-joshi-grammer/sahayatha/internal/api"
)

// Synthesizer renders text to an audio artifact and returns its reference.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageHint string) (string, error)
}

type TTSHandler struct {
	synthesizer Synthesizer
}

func NewTTSHandler(synthesizer Synthesizer) *TTSHandler {
	return &TTSHandler{synthesizer: synthesizer}
}

type TTSRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type TTSResponse struct {
	OK       bool   `json:"ok"`
	AudioURL string `json:"audio_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HandleTextToSpeech handles POST /api/text-to-speech.
func (h *TTSHandler) HandleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.JSON(w, http.StatusOK, TTSResponse{OK: false, Error: "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		api.JSON(w, http.StatusOK, TTSResponse{OK: false, Error: "text is required"})
		return
	}

	ref, err := h.synthesizer.Synthesize(r.Context(), req.Text, req.Language)
	if err != nil {
		api.JSON(w, http.StatusOK, TTSResponse{OK: false, Error: userMessage(err)})
		return
	}

	api.JSON(w, http.StatusOK, TTSResponse{OK: true, AudioURL: ref})
}
