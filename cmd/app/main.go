package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-studio/internal/config"
	"media-studio/internal/domain/ports/adapter"
	aiAdapters "media-studio/internal/infra/adapters/ai"
	"media-studio/internal/infra/api"
	"media-studio/internal/infra/logging"
	"media-studio/internal/infra/metrics"
	red "media-studio/internal/infra/redis"
	"media-studio/internal/infra/store"
	"media-studio/internal/infra/worker"
	"media-studio/internal/usecase"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "developer mode (no real provider calls)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled, provider calls are stubbed")
	}

	// ---- Redis (optional, rate limiting only) ----
	var limiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient)
	} else {
		logger.Info().Msg("no redis configured, rate limiting disabled")
	}

	// ---- Provider adapter ----
	var gen adapter.GenMediaAdapter
	if cfg.Runtime.Dev {
		gen = aiAdapters.NewNoopGenMedia()
	} else {
		gen, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL,
			cfg.AI.EditModel, cfg.AI.ImageModel, cfg.AI.VideoModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini adapter")
		}
		logger.Info().
			Str("edit_model", cfg.AI.EditModel).
			Str("image_model", cfg.AI.ImageModel).
			Str("video_model", cfg.AI.VideoModel).
			Msg("provider: gemini")
	}
	gen = aiAdapters.NewLimitedGenMedia(gen, cfg.AI.ConcurrentLimit)

	// ---- Core ----
	mediaUC := usecase.NewMediaUseCase(gen, cfg.AI.MaxAttempts, cfg.AI.RetryDelay, cfg.AI.PollInterval, logger)

	jobStore := store.NewMemoryJobStore()
	pool := worker.NewPool(cfg.Server.Workers, logger)
	pool.Start(ctx)
	defer pool.Stop()
	runner := worker.NewRenderRunner(jobStore, mediaUC, pool, logger)

	// ---- HTTP ----
	apiSrv := api.NewServer(mediaUC, runner, jobStore, cfg.Server.APIKey, cfg.Server.ImageTimeout,
		limiter, cfg.RateLimit.PerMinute, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: apiSrv.Router(),
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	// ---- Shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
