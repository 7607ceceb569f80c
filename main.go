package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/crewlog/crewlog-engine/pkg/auth"
	"github.com/crewlog/crewlog-engine/pkg/cache"
	"github.com/crewlog/crewlog-engine/pkg/config"
	"github.com/crewlog/crewlog-engine/pkg/database"
	"github.com/crewlog/crewlog-engine/pkg/handlers"
	"github.com/crewlog/crewlog-engine/pkg/llm"
	"github.com/crewlog/crewlog-engine/pkg/logging"
	"github.com/crewlog/crewlog-engine/pkg/middleware"
	"github.com/crewlog/crewlog-engine/pkg/repositories"
	"github.com/crewlog/crewlog-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.Bool("ai_configured", cfg.AI.IsConfigured()),
		zap.Bool("auth_enabled", cfg.Auth.Enable))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedis(ctx, &cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	entryRepo := repositories.NewEntryRepository(pool)
	commitmentRepo := repositories.NewCommitmentRepository(pool)
	projectRepo := repositories.NewProjectRepository(pool)
	personRepo := repositories.NewPersonRepository(pool)
	reflectionRepo := repositories.NewReflectionRepository(pool)

	aiClient := llm.New(&llm.Config{
		Provider:            cfg.AI.Provider,
		BaseURL:             cfg.AI.BaseURL,
		Model:               cfg.AI.Model,
		APIKey:              cfg.AI.APIKey,
		TranscriptionModel:  cfg.AI.TranscriptionModel,
		TranscriptionAPIKey: cfg.AI.TranscriptionAPIKey,
	}, logger)

	insightCache := cache.NewInsightCache(redisClient, logger)

	journalSvc := services.NewJournalService(
		entryRepo, commitmentRepo, projectRepo, personRepo, reflectionRepo, logger)
	insightSvc := services.NewInsightService(
		aiClient, entryRepo, commitmentRepo, projectRepo, personRepo, reflectionRepo,
		journalSvc, insightCache,
		services.InsightConfig{
			FullTimeout:             cfg.AI.FullTimeout(),
			QuickTimeout:            cfg.AI.QuickTimeout(),
			MinDecisionsForPatterns: cfg.AI.MinDecisionsForPatterns,
		},
		logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewEntryHandler(journalSvc, logger).RegisterRoutes(mux)
	handlers.NewCommitmentHandler(journalSvc, logger).RegisterRoutes(mux)
	handlers.NewProjectHandler(journalSvc, logger).RegisterRoutes(mux)
	handlers.NewPersonHandler(journalSvc, logger).RegisterRoutes(mux)
	handlers.NewReflectionHandler(journalSvc, insightSvc, logger).RegisterRoutes(mux)
	handlers.NewInsightHandler(insightSvc, logger).RegisterRoutes(mux)

	authMiddleware := auth.NewMiddleware(cfg.Auth.JWTSecret, cfg.Auth.Enable, logger)
	handler := middleware.RequestLogger(logger)(authMiddleware.Handler(mux))

	server := &http.Server{
		Addr:              cfg.BindAddr + ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting crewlog-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}
