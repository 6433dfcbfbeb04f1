package openai

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultEmbeddingModel is the OpenAI model used for generating embeddings
	DefaultEmbeddingModel = openai.AdaEmbeddingV2
	// DefaultEmbeddingDimensions is the expected dimension of embeddings from ada-002
	DefaultEmbeddingDimensions = 1536
	// DefaultChatModel is the model used for grounded answer generation
	DefaultChatModel = "gpt-4o-mini"
	// DefaultSTTModel is the Whisper model used for transcription
	DefaultSTTModel = "whisper-1"
	// DefaultTTSModel is the speech-synthesis model
	DefaultTTSModel = openai.TTSModel1
)

var (
	// ErrEmptyText is returned when text is empty
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrWrongDimensions is returned when embedding has wrong dimensions
	ErrWrongDimensions = errors.New("embedding has wrong dimensions, expected 1536")
	// ErrNoChoices is returned when a completion comes back empty
	ErrNoChoices = errors.New("no completion choices returned")
)

// API is the slice of the OpenAI surface the assistant uses.
type API interface {
	CreateEmbeddings(ctx context.Context, text string) ([]float32, error)
	CreateChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32) (string, error)
	CreateTranscription(ctx context.Context, audio io.Reader, filename, language string) (text, detectedLanguage string, err error)
	CreateSpeech(ctx context.Context, text, language string) (io.ReadCloser, error)
}

// Client wraps the OpenAI API behind the capability methods the pipeline needs.
type Client struct {
	api        API
	dimensions int
}

// Config holds the model selection for every capability.
type Config struct {
	APIKey              string
	EmbeddingModel      openai.EmbeddingModel
	EmbeddingDimensions int
	ChatModel           string
	STTModel            string
	TTSModel            openai.SpeechModel
	TTSVoice            openai.SpeechVoice
}

// OpenAIAdapter implements API against the real service.
type OpenAIAdapter struct {
	client         *openai.Client
	embeddingModel openai.EmbeddingModel
	chatModel      string
	sttModel       string
	ttsModel       openai.SpeechModel
	ttsVoice       openai.SpeechVoice
}

func NewOpenAIAdapter(cfg Config) *OpenAIAdapter {
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.STTModel == "" {
		cfg.STTModel = DefaultSTTModel
	}
	if cfg.TTSModel == "" {
		cfg.TTSModel = DefaultTTSModel
	}
	if cfg.TTSVoice == "" {
		cfg.TTSVoice = openai.VoiceAlloy
	}
	return &OpenAIAdapter{
		client:         openai.NewClient(cfg.APIKey),
		embeddingModel: cfg.EmbeddingModel,
		chatModel:      cfg.ChatModel,
		sttModel:       cfg.STTModel,
		ttsModel:       cfg.TTSModel,
		ttsVoice:       cfg.TTSVoice,
	}
}

// CreateEmbeddings calls the OpenAI API to create embeddings
func (a *OpenAIAdapter) CreateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: a.embeddingModel,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding data returned")
	}

	return resp.Data[0].Embedding, nil
}

// CreateChatCompletion runs a single chat completion and returns the reply text.
func (a *OpenAIAdapter) CreateChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.chatModel,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// CreateTranscription sends a complete audio clip to Whisper.
func (a *OpenAIAdapter) CreateTranscription(ctx context.Context, audio io.Reader, filename, language string) (string, string, error) {
	resp, err := a.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    a.sttModel,
		Reader:   audio,
		FilePath: filename,
		Language: language,
	})
	if err != nil {
		return "", "", err
	}
	return resp.Text, resp.Language, nil
}

// CreateSpeech synthesizes text to an mp3 stream. The language hint is
// accepted for interface symmetry; the TTS endpoint detects the language
// from the text itself.
func (a *OpenAIAdapter) CreateSpeech(ctx context.Context, text, language string) (io.ReadCloser, error) {
	resp, err := a.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          a.ttsModel,
		Input:          text,
		Voice:          a.ttsVoice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// NewClientWithConfig creates a new OpenAI client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	dimensions := cfg.EmbeddingDimensions
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	return &Client{
		api:        NewOpenAIAdapter(cfg),
		dimensions: dimensions,
	}
}

// NewClientWithAPI wires a custom API implementation; used by tests.
func NewClientWithAPI(api API, dimensions int) *Client {
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	return &Client{api: api, dimensions: dimensions}
}

// GenerateEmbedding generates an embedding for the given text
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	embedding, err := c.api.CreateEmbeddings(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}

	if len(embedding) != c.dimensions {
		return nil, ErrWrongDimensions
	}

	return embedding, nil
}

// Complete runs a chat completion over the given messages.
func (c *Client) Complete(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32) (string, error) {
	if len(messages) == 0 {
		return "", ErrEmptyText
	}
	reply, err := c.api.CreateChatCompletion(ctx, messages, temperature)
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}
	return reply, nil
}

// Transcribe converts an audio clip to text, optionally narrowed to a language.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, string, error) {
	text, detected, err := c.api.CreateTranscription(ctx, audio, filename, language)
	if err != nil {
		return "", "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return text, detected, nil
}

// Speak synthesizes text and returns the audio stream. language is a hint
// forwarded to the backend.
func (c *Client) Speak(ctx context.Context, text, language string) (io.ReadCloser, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	stream, err := c.api.CreateSpeech(ctx, text, language)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	return stream, nil
}
