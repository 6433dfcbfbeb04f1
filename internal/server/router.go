package server

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pro-joshi-grammer/sahayatha/internal/api"
	"github.com/pro-joshi-grammer/sahayatha/internal/api/handlers"
	"github.com/pro-joshi-grammer/sahayatha/internal/api/middleware"
)

type RouterConfig struct {
	ChatHandler      *handlers.ChatHandler
	VoiceHandler     *handlers.VoiceHandler
	TTSHandler       *handlers.TTSHandler
	TicketHandler    *handlers.TicketHandler
	ComplaintHandler *handlers.ComplaintHandler
	OTPHandler       *handlers.OTPHandler

	// AudioDir is served read-only under /audio/ for synthesized replies.
	AudioDir string
	// WebDir holds the static front end (index, assets, certificate pages).
	WebDir string

	AllowedOrigin string
	MaxBodyBytes  int64
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Session)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Session-Id"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.MaxBodyBytes(cfg.MaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", cfg.ChatHandler.HandleChat)
		r.Post("/voice-to-text", cfg.VoiceHandler.HandleVoiceToText)
		r.Post("/text-to-speech", cfg.TTSHandler.HandleTextToSpeech)

		r.Post("/apply", cfg.TicketHandler.HandleApply)
		r.Get("/get-applications", cfg.TicketHandler.HandleList)
		r.Post("/applications/{id}/status", cfg.TicketHandler.HandleUpdateStatus)
		r.Post("/submit-complaint", cfg.ComplaintHandler.HandleSubmitComplaint)

		r.Post("/send-otp", cfg.OTPHandler.HandleSendOTP)
		r.Post("/verify-otp", cfg.OTPHandler.HandleVerifyOTP)
	})

	if cfg.AudioDir != "" {
		audioFS := http.StripPrefix("/audio/", http.FileServer(http.Dir(cfg.AudioDir)))
		r.Get("/audio/*", audioFS.ServeHTTP)
	}

	if cfg.WebDir != "" {
		webFS := http.FileServer(http.Dir(cfg.WebDir))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, filepath.Join(cfg.WebDir, "index.html"))
		})
		r.Get("/static/*", webFS.ServeHTTP)
		r.Get("/certificates/*", webFS.ServeHTTP)
	}

	return r
}
