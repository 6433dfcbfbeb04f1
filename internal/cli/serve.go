package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/pro-joshi-grammer/sahayatha/internal/api/handlers"
	"github.com/pro-joshi-grammer/sahayatha/internal/chat"
	"github.com/pro-joshi-grammer/sahayatha/internal/config"
	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
	"github.com/pro-joshi-grammer/sahayatha/internal/generator"
	"github.com/pro-joshi-grammer/sahayatha/internal/jobs"
	"github.com/pro-joshi-grammer/sahayatha/internal/openai"
	"github.com/pro-joshi-grammer/sahayatha/internal/otp"
	"github.com/pro-joshi-grammer/sahayatha/internal/repository"
	"github.com/pro-joshi-grammer/sahayatha/internal/retriever"
	"github.com/pro-joshi-grammer/sahayatha/internal/server"
	"github.com/pro-joshi-grammer/sahayatha/internal/speech"
	"github.com/pro-joshi-grammer/sahayatha/internal/storage"
	"github.com/pro-joshi-grammer/sahayatha/internal/telemetry"
	"github.com/pro-joshi-grammer/sahayatha/internal/tickets"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the citizen assistant server",
		Long:  "Start the sahayatha API server, ingest the knowledge corpus, and run background workers",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := config.MustLoad()

	if cfg.SentryDSN != "" {
		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			TracesSampleRate: cfg.SampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("connected to database")

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	ticketRepo := repository.NewTicketRepository(pool)
	corpusRepo := repository.NewCorpusRepository(pool)
	ticketSvc := tickets.NewService(ticketRepo)

	var photoStore storage.PhotoStore
	if cfg.HasS3() {
		s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		log.Printf("S3 bucket '%s' ready", cfg.S3Bucket)
		photoStore = s3Client
	} else {
		photoStore, err = storage.NewLocalPhotoStore(cfg.ComplaintPhotoDir)
		if err != nil {
			return fmt.Errorf("failed to create photo store: %w", err)
		}
	}

	historyStore := chat.NewHistoryStore(cfg.HistoryTurns, cfg.HistoryTTL)
	gate := chat.NewGate(cfg.GenConcurrency, cfg.GenQueueDepth)

	var chatHandler *handlers.ChatHandler
	var voiceHandler *handlers.VoiceHandler
	var ttsHandler *handlers.TTSHandler
	var workers []*jobs.Worker

	if cfg.HasOpenAI() {
		aiClient := openai.NewClientWithConfig(openai.Config{
			APIKey:         cfg.OpenAIAPIKey,
			EmbeddingModel: goopenai.EmbeddingModel(cfg.EmbeddingModel),
			ChatModel:      cfg.ChatModel,
			STTModel:       cfg.STTModel,
			TTSModel:       goopenai.SpeechModel(cfg.TTSModel),
			TTSVoice:       goopenai.SpeechVoice(cfg.TTSVoice),
		})

		index := retriever.NewIndex(aiClient)
		ingester := retriever.NewIngester(index, aiClient, corpusRepo, retriever.DefaultChunkConfig())
		if _, err := ingester.IngestFile(ctx, cfg.CorpusPath); err != nil {
			log.Printf("corpus ingest failed (answers will be ungrounded): %v", err)
		} else {
			log.Printf("corpus ingested from %s", cfg.CorpusPath)
		}

		spec, err := generator.LoadSpec(cfg.IntentSpecPath)
		if err != nil {
			return fmt.Errorf("failed to load intent spec: %w", err)
		}

		gen := generator.New(generator.NewMatcher(spec), ticketSvc, aiClient, generator.Config{
			Fallback: cfg.GroundingFallback,
			Timeout:  cfg.GenTimeout,
		})

		synthesizer, err := speech.NewSynthesizer(aiClient, cfg.AudioDir)
		if err != nil {
			return fmt.Errorf("failed to create synthesizer: %w", err)
		}

		orch := chat.NewOrchestrator(index, gen, synthesizer, historyStore, gate, cfg.RetrieveTopK)
		chatHandler = handlers.NewChatHandler(orch)
		voiceHandler = handlers.NewVoiceHandler(speech.NewTranscriber(aiClient), cfg.MaxAudioBytes)
		ttsHandler = handlers.NewTTSHandler(synthesizer)

		audioWorker := jobs.NewWorker(jobs.NewAudioCleanup(cfg.AudioDir, cfg.AudioTTL), cfg.AudioSweep)
		go audioWorker.Start(ctx)
		workers = append(workers, audioWorker)
		log.Println("audio cleanup worker started")
	} else {
		log.Println("OPENAI_API_KEY not set; chat pipeline disabled")
		chatHandler = handlers.NewChatHandler(&NoOpOrchestrator{})
		voiceHandler = handlers.NewVoiceHandler(&NoOpTranscriber{}, cfg.MaxAudioBytes)
		ttsHandler = handlers.NewTTSHandler(&NoOpSynthesizer{})
	}

	sweepWorker := jobs.NewWorker(jobs.NewHistorySweep(historyStore), cfg.HistoryTTL)
	go sweepWorker.Start(ctx)
	workers = append(workers, sweepWorker)

	var otpStore otp.Store
	if cfg.HasRedis() {
		otpStore, err = otp.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Println("using redis OTP store")
	} else {
		otpStore = otp.NewMemoryStore()
	}

	var otpSender otp.Sender
	if cfg.HasSMS() {
		otpSender = otp.NewSMSSender(cfg.SMSAPIKey, cfg.SMSAPIURL, &http.Client{Timeout: 10 * time.Second})
	} else {
		otpSender = &otp.LogSender{}
	}
	otpSvc := otp.NewService(otpStore, otpSender, cfg.OTPTTL)

	router := server.NewRouter(server.RouterConfig{
		ChatHandler:      chatHandler,
		VoiceHandler:     voiceHandler,
		TTSHandler:       ttsHandler,
		TicketHandler:    handlers.NewTicketHandler(ticketSvc),
		ComplaintHandler: handlers.NewComplaintHandler(ticketSvc, photoStore),
		OTPHandler:       handlers.NewOTPHandler(otpSvc),
		AudioDir:         cfg.AudioDir,
		WebDir:           cfg.WebDir,
		AllowedOrigin:    cfg.AllowedOrigin,
		MaxBodyBytes:     cfg.MaxAudioBytes,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	for _, w := range workers {
		w.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

// NoOpOrchestrator answers every chat turn with a configuration notice. It
// stands in when no OpenAI key is configured so the ticket-store routes can
// still run.
type NoOpOrchestrator struct{}

func (o *NoOpOrchestrator) HandleChat(ctx context.Context, req chat.Request) domain.Envelope {
	return domain.FailedEnvelope("assistant is not configured: OPENAI_API_KEY required")
}

type NoOpTranscriber struct{}

func (t *NoOpTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename, languageHint string) (string, string, error) {
	return "", "", domain.ErrTranscriberUnavailable
}

type NoOpSynthesizer struct{}

func (s *NoOpSynthesizer) Synthesize(ctx context.Context, text, languageHint string) (string, error) {
	return "", domain.ErrSynthesisFailed
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if err == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
