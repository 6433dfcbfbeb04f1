package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SAHAYATHA_DATABASE_URL", "postgres://localhost/sahayatha")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, "whisper-1", cfg.STTModel)
	assert.Equal(t, 4, cfg.RetrieveTopK)
	assert.Equal(t, "refuse", cfg.GroundingFallback)
	assert.Equal(t, 2, cfg.GenConcurrency)
	assert.Equal(t, 8, cfg.GenQueueDepth)
	assert.Equal(t, 12, cfg.HistoryTurns)
	assert.False(t, cfg.HasOpenAI())
	assert.False(t, cfg.HasS3())
	assert.False(t, cfg.HasRedis())
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("SAHAYATHA_DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidGroundingFallback(t *testing.T) {
	t.Setenv("SAHAYATHA_DATABASE_URL", "postgres://localhost/sahayatha")
	t.Setenv("SAHAYATHA_GROUNDING_FALLBACK", "improvise")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_CapabilityPredicates(t *testing.T) {
	t.Setenv("SAHAYATHA_DATABASE_URL", "postgres://localhost/sahayatha")
	t.Setenv("SAHAYATHA_OPENAI_API_KEY", "sk-test")
	t.Setenv("SAHAYATHA_S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("SAHAYATHA_S3_ACCESS_KEY_ID", "minio")
	t.Setenv("SAHAYATHA_S3_SECRET_ACCESS_KEY", "minio123")
	t.Setenv("SAHAYATHA_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.HasOpenAI())
	assert.True(t, cfg.HasS3())
	assert.True(t, cfg.HasRedis())
}
