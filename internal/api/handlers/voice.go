package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/pro-joshi-grammer/sahayatha/internal/api"
)

// Transcriber converts a complete audio clip into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, languageHint string) (text, detectedLanguage string, err error)
}

type VoiceHandler struct {
	transcriber Transcriber
	maxBytes    int64
}

func NewVoiceHandler(transcriber Transcriber, maxBytes int64) *VoiceHandler {
	return &VoiceHandler{transcriber: transcriber, maxBytes: maxBytes}
}

type VoiceResponse struct {
	OK       bool   `json:"ok"`
	Text     string `json:"text,omitempty"`
	Language string `json:"language,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HandleVoiceToText handles POST /api/voice-to-text. There is no silent
// empty-text fallback: a clip that cannot be transcribed fails visibly so
// the client can prompt the user to try again.
func (h *VoiceHandler) HandleVoiceToText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		api.JSON(w, http.StatusOK, VoiceResponse{OK: false, Error: "could not read the audio upload"})
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		api.JSON(w, http.StatusOK, VoiceResponse{OK: false, Error: "audio clip is missing"})
		return
	}
	defer file.Close()

	if header.Size == 0 {
		api.JSON(w, http.StatusOK, VoiceResponse{OK: false, Error: "audio clip is empty"})
		return
	}

	text, language, err := h.transcriber.Transcribe(r.Context(), file, header.Filename, r.FormValue("language"))
	if err != nil {
		api.JSON(w, http.StatusOK, VoiceResponse{OK: false, Error: userMessage(err)})
		return
	}

	api.JSON(w, http.StatusOK, VoiceResponse{OK: true, Text: text, Language: language})
}
