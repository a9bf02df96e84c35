package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rohitmodi970/casual-quizing/internal/config"
	"github.com/rohitmodi970/casual-quizing/internal/database"
	"github.com/rohitmodi970/casual-quizing/internal/handler"
	"github.com/rohitmodi970/casual-quizing/internal/logger"
	"github.com/rohitmodi970/casual-quizing/internal/mailer"
	"github.com/rohitmodi970/casual-quizing/internal/repository"
	"github.com/rohitmodi970/casual-quizing/internal/router"
	"github.com/rohitmodi970/casual-quizing/internal/service"
	"github.com/rohitmodi970/casual-quizing/internal/trivia"
	"github.com/rohitmodi970/casual-quizing/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Bool("mail_enabled", cfg.MailEnabled).
		Msg("Starting casual-quizing backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Mailer ─────────────────────────────────────────────
	mail, err := mailer.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure SMTP client")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	resultRepo := repository.NewResultRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	triviaClient := trivia.NewClient(cfg.TriviaBaseURL, cfg.QuestionCount, nil)
	submissionService := service.NewSubmissionService(userRepo, resultRepo, mail, log)
	resultService := service.NewResultService(resultRepo, userRepo)
	userService := service.NewUserService(userRepo)
	questionService := service.NewQuestionService(triviaClient, rdb, cfg.QuestionCacheTTL, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Quiz:     handler.NewQuizHandler(submissionService, resultService),
		User:     handler.NewUserHandler(userService),
		Question: handler.NewQuestionHandler(questionService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
