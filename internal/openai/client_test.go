package openai

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOpenAIAPI is a mock for the OpenAI API
type MockOpenAIAPI struct {
	mock.Mock
}

func (m *MockOpenAIAPI) CreateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockOpenAIAPI) CreateChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32) (string, error) {
	args := m.Called(ctx, messages, temperature)
	return args.String(0), args.Error(1)
}

func (m *MockOpenAIAPI) CreateTranscription(ctx context.Context, audio io.Reader, filename, language string) (string, string, error) {
	args := m.Called(ctx, audio, filename, language)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockOpenAIAPI) CreateSpeech(ctx context.Context, text, language string) (io.ReadCloser, error) {
	args := m.Called(ctx, text, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func TestClient_GenerateEmbedding_Success(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := NewClientWithAPI(mockAPI, 1536)

	ctx := context.Background()
	text := "Birth certificates are issued within 7 working days."
	expectedEmbedding := make([]float32, 1536)
	for i := range expectedEmbedding {
		expectedEmbedding[i] = float32(i) * 0.001
	}

	mockAPI.On("CreateEmbeddings", ctx, text).Return(expectedEmbedding, nil)

	embedding, err := client.GenerateEmbedding(ctx, text)

	assert.NoError(t, err)
	assert.Len(t, embedding, 1536)
	assert.Equal(t, expectedEmbedding, embedding)
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateEmbedding_EmptyText(t *testing.T) {
	client := NewClientWithAPI(new(MockOpenAIAPI), 1536)

	embedding, err := client.GenerateEmbedding(context.Background(), "")

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.Equal(t, ErrEmptyText, err)
}

func TestClient_GenerateEmbedding_WrongDimensions(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := NewClientWithAPI(mockAPI, 1536)

	mockAPI.On("CreateEmbeddings", mock.Anything, "short").Return(make([]float32, 8), nil)

	embedding, err := client.GenerateEmbedding(context.Background(), "short")

	assert.Nil(t, embedding)
	assert.Equal(t, ErrWrongDimensions, err)
}

func TestClient_GenerateEmbedding_APIError(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := NewClientWithAPI(mockAPI, 1536)

	mockAPI.On("CreateEmbeddings", mock.Anything, "doc").Return(nil, errors.New("rate limited"))

	embedding, err := client.GenerateEmbedding(context.Background(), "doc")

	assert.Nil(t, embedding)
	assert.ErrorContains(t, err, "failed to create embedding")
}

func TestClient_Complete_Success(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := NewClientWithAPI(mockAPI, 1536)

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "how do I pay property tax"},
	}
	mockAPI.On("CreateChatCompletion", mock.Anything, messages, float32(0.2)).Return("Pay at the ward office or online.", nil)

	reply, err := client.Complete(context.Background(), messages, 0.2)

	require.NoError(t, err)
	assert.Equal(t, "Pay at the ward office or online.", reply)
	mockAPI.AssertExpectations(t)
}

func TestClient_Complete_NoMessages(t *testing.T) {
	client := NewClientWithAPI(new(MockOpenAIAPI), 1536)

	reply, err := client.Complete(context.Background(), nil, 0)

	assert.Empty(t, reply)
	assert.Equal(t, ErrEmptyText, err)
}

func TestClient_Transcribe_PassesLanguageHint(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := NewClientWithAPI(mockAPI, 1536)

	audio := strings.NewReader("fake-audio")
	mockAPI.On("CreateTranscription", mock.Anything, audio, "clip.webm", "te").Return("నా ఇంట్లో తాగునీరు లేదు", "te", nil)

	text, detected, err := client.Transcribe(context.Background(), audio, "clip.webm", "te")

	require.NoError(t, err)
	assert.Equal(t, "నా ఇంట్లో తాగునీరు లేదు", text)
	assert.Equal(t, "te", detected)
	mockAPI.AssertExpectations(t)
}

func TestClient_Speak_EmptyText(t *testing.T) {
	client := NewClientWithAPI(new(MockOpenAIAPI), 1536)

	stream, err := client.Speak(context.Background(), "", "")

	assert.Nil(t, stream)
	assert.Equal(t, ErrEmptyText, err)
}

func TestClient_Speak_Success(t *testing.T) {
	mockAPI := new(MockOpenAIAPI)
	client := NewClientWithAPI(mockAPI, 1536)

	body := io.NopCloser(strings.NewReader("mp3"))
	mockAPI.On("CreateSpeech", mock.Anything, "hello", "Telugu").Return(body, nil)

	stream, err := client.Speak(context.Background(), "hello", "Telugu")

	require.NoError(t, err)
	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "mp3", string(data))
}
