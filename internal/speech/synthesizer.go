package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// TextToSpeech is the synthesis capability the adapter sits on. language is
// a hint; backends that detect the language from the text may ignore it.
type TextToSpeech interface {
	Speak(ctx context.Context, text, language string) (io.ReadCloser, error)
}

// Synthesizer renders text to an mp3 artifact on disk. Each call produces a
// fresh file named tts_<uuid>.mp3; the uuid doubles as a cache-busting token
// so browsers never replay a stale clip. Artifacts are ephemeral and removed
// by the cleanup worker once they age out.
type Synthesizer struct {
	tts TextToSpeech
	dir string
}

// NewSynthesizer creates a synthesizer writing artifacts under dir.
func NewSynthesizer(tts TextToSpeech, dir string) (*Synthesizer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio dir: %w", err)
	}
	return &Synthesizer{tts: tts, dir: dir}, nil
}

// Synthesize renders text and returns the public reference
// (/audio/tts_<uuid>.mp3) for the written artifact. languageHint is passed
// through to the backend.
func (s *Synthesizer) Synthesize(ctx context.Context, text, languageHint string) (string, error) {
	if text == "" {
		return "", domain.ErrSynthesisFailed
	}

	stream, err := s.tts.Speak(ctx, text, languageHint)
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable, "speech synthesis failed", err)
	}
	defer stream.Close()

	name := fmt.Sprintf("tts_%s.mp3", uuid.NewString())
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to write audio artifact", err)
	}

	if _, err := io.Copy(f, stream); err != nil {
		f.Close()
		os.Remove(path)
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to write audio artifact", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to write audio artifact", err)
	}

	return "/audio/" + name, nil
}

// Dir returns the artifact directory, used by the cleanup worker and the
// file server route.
func (s *Synthesizer) Dir() string {
	return s.dir
}
