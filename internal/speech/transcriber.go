// Package speech adapts the OpenAI audio endpoints to the pipeline: Whisper
// for speech-to-text and TTS for spoken replies.
package speech

import (
	"context"
	"io"
	"strings"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// SpeechToText is the transcription capability the adapter sits on.
type SpeechToText interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, language string) (text, detectedLanguage string, err error)
}

// Transcriber converts complete audio clips into text. It owns the error
// taxonomy: callers only ever see domain errors, never raw backend ones.
type Transcriber struct {
	stt SpeechToText
}

// NewTranscriber wraps a speech-to-text backend.
func NewTranscriber(stt SpeechToText) *Transcriber {
	return &Transcriber{stt: stt}
}

// Transcribe returns the recognized text and detected language. languageHint
// narrows recognition when the client knows the speaker's language; it is
// passed through as-is and may be empty.
func (t *Transcriber) Transcribe(ctx context.Context, audio io.Reader, filename, languageHint string) (string, string, error) {
	if audio == nil {
		return "", "", domain.ErrEmptyAudio
	}

	text, detected, err := t.stt.Transcribe(ctx, audio, filename, languageHint)
	if err != nil {
		return "", "", domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable, "speech recognition is unavailable", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", domain.ErrUnintelligibleAudio
	}

	return text, detected, nil
}
