package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	SentryDSN   string  `envconfig:"SENTRY_DSN"`
	Environment string  `envconfig:"ENVIRONMENT" default:"development"`
	SampleRate  float64 `envconfig:"SENTRY_SAMPLE_RATE" default:"1.0"`

	AllowedOrigin string `envconfig:"ALLOWED_ORIGIN" default:"*"`

	OpenAIAPIKey   string `envconfig:"OPENAI_API_KEY"`
	ChatModel      string `envconfig:"CHAT_MODEL" default:"gpt-4o-mini"`
	EmbeddingModel string `envconfig:"EMBEDDING_MODEL" default:"text-embedding-ada-002"`
	STTModel       string `envconfig:"STT_MODEL" default:"whisper-1"`
	TTSModel       string `envconfig:"TTS_MODEL" default:"tts-1"`
	TTSVoice       string `envconfig:"TTS_VOICE" default:"alloy"`

	// Knowledge corpus: document ingested at startup, retrieval fan-out, and
	// the zero-chunk generation policy ("refuse" or "answer").
	CorpusPath        string `envconfig:"CORPUS_PATH" default:"assets/governance_brochure.txt"`
	RetrieveTopK      int    `envconfig:"RETRIEVE_TOP_K" default:"4"`
	GroundingFallback string `envconfig:"GROUNDING_FALLBACK" default:"refuse"`

	IntentSpecPath string `envconfig:"INTENT_SPEC_PATH" default:"assets/intents.yaml"`

	// Generation gate: slots run concurrently, the queue holds waiters, and
	// anything beyond both is rejected with a retry-later reply.
	GenTimeout     time.Duration `envconfig:"GEN_TIMEOUT" default:"30s"`
	GenConcurrency int           `envconfig:"GEN_CONCURRENCY" default:"2"`
	GenQueueDepth  int           `envconfig:"GEN_QUEUE_DEPTH" default:"8"`

	HistoryTurns int           `envconfig:"HISTORY_TURNS" default:"12"`
	HistoryTTL   time.Duration `envconfig:"HISTORY_TTL" default:"30m"`

	AudioDir          string        `envconfig:"AUDIO_DIR" default:"data/audio"`
	AudioTTL          time.Duration `envconfig:"AUDIO_TTL" default:"15m"`
	AudioSweep        time.Duration `envconfig:"AUDIO_SWEEP_INTERVAL" default:"1m"`
	MaxAudioBytes     int64         `envconfig:"MAX_AUDIO_BYTES" default:"10485760"`
	WebDir            string        `envconfig:"WEB_DIR" default:"web"`
	ComplaintPhotoDir string        `envconfig:"COMPLAINT_PHOTO_DIR" default:"data/uploads/complaints"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"sahayatha-uploads"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	RedisURL string        `envconfig:"REDIS_URL"`
	OTPTTL   time.Duration `envconfig:"OTP_TTL" default:"5m"`

	SMSAPIKey string `envconfig:"SMS_API_KEY"`
	SMSAPIURL string `envconfig:"SMS_API_URL" default:"https://www.fast2sms.com/dev/bulkV2"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("SAHAYATHA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.GroundingFallback != "refuse" && cfg.GroundingFallback != "answer" {
		return nil, fmt.Errorf("invalid GROUNDING_FALLBACK %q (want refuse or answer)", cfg.GroundingFallback)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasRedis() bool {
	return c.RedisURL != ""
}

func (c *Config) HasSMS() bool {
	return c.SMSAPIKey != ""
}
