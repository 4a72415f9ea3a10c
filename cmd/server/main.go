package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sadriving/sadriving-backend/internal/config"
	"github.com/sadriving/sadriving-backend/internal/database"
	"github.com/sadriving/sadriving-backend/internal/handler"
	"github.com/sadriving/sadriving-backend/internal/logger"
	"github.com/sadriving/sadriving-backend/internal/middleware"
	"github.com/sadriving/sadriving-backend/internal/model"
	"github.com/sadriving/sadriving-backend/internal/repository"
	"github.com/sadriving/sadriving-backend/internal/router"
	"github.com/sadriving/sadriving-backend/internal/service"
	"github.com/sadriving/sadriving-backend/internal/validator"
	"github.com/sadriving/sadriving-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("session_store", cfg.SessionStore).
		Str("registration_sink", cfg.RegistrationSink).
		Msg("Starting SA Driving School backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	var rdb *redis.Client
	if cfg.UsesRedis() {
		client, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer client.Close()
		rdb = client
	}

	// ─── Connect to PostgreSQL (optional) ──────────────────────────────
	var registrationRepo *repository.RegistrationRepository
	if cfg.UsesPostgres() {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		registrationRepo = repository.NewRegistrationRepository(pool)
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	workersDone := make(chan struct{})

	// ─── Initialize Repositories ───────────────────────────────────────
	var sessionStore service.FormSessionStore
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		sessionStore = repository.NewRedisFormSessionRepository(rdb, cfg.SessionTTL)
	default:
		memStore := repository.NewMemoryFormSessionRepository(cfg.SessionTTL)
		go memStore.StartJanitor(workerCtx, time.Minute)
		sessionStore = memStore
	}

	var recorder service.RegistrationRecorder
	switch cfg.RegistrationSink {
	case config.RegistrationSinkPostgres:
		recorder = registrationRepo
	case config.RegistrationSinkQueue:
		recorder = repository.NewRegistrationQueue(rdb)
	}

	// ─── Initialize Services ──────────────────────────────────────────
	processor := service.NewSimulatedProcessor(cfg.PaymentDelay, log)
	notifier := service.NewLogNotifier(log)
	registrationService := service.NewRegistrationService(model.DefaultCatalog, processor, recorder, notifier, time.Now, log)
	sessionService := service.NewFormSessionService(sessionStore, registrationService, log)

	// Shared by the HTTP submit endpoints and the WebSocket submit action.
	submitLimiter := middleware.NewRateLimiter(cfg.SubmitRateLimit, time.Minute)
	defer submitLimiter.Stop()

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Catalog:      handler.NewCatalogHandler(registrationService),
		FAQ:          handler.NewFAQHandler(model.FAQs),
		Contract:     handler.NewContractHandler(cfg.ContractPath, log),
		Registration: handler.NewRegistrationHandler(registrationService, sessionService),
		WS:           handler.NewWSHandler(registrationService, sessionService, submitLimiter, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	if cfg.RegistrationSink == config.RegistrationSinkQueue {
		registrationWorker := worker.NewRegistrationWorker(registrationRepo, rdb, log)
		go func() {
			registrationWorker.Start(workerCtx)
			close(workersDone)
		}()
	} else {
		close(workersDone)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, submitLimiter, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the registration queue to drain.
	workerCancel()
	select {
	case <-workersDone:
	case <-time.After(5 * time.Second):
		log.Warn().Msg("Registration worker did not stop in time")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
