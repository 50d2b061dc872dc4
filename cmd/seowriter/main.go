// Package main is the entry point for the SEO article studio API server.
// It loads configuration, connects to PostgreSQL and Valkey, wires the
// generation and publishing workflows and serves the JSON API with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seowriter/internal/ai"
	"seowriter/internal/cache"
	"seowriter/internal/config"
	"seowriter/internal/database"
	"seowriter/internal/generation"
	"seowriter/internal/handlers"
	"seowriter/internal/middleware"
	"seowriter/internal/router"
	"seowriter/internal/store"
	"seowriter/internal/wordpress"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Default generation settings; existing values are kept.
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	articleStore := store.NewArticleStore(db)
	categoryStore := store.NewCategoryStore(db)
	topicStore := store.NewTopicStore(db)
	settingStore := store.NewSettingStore(db)
	logStore := store.NewGenerationLogStore(db)

	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	generator := generation.NewService(aiRegistry, articleStore, logStore, settingStore)

	wpClient := wordpress.NewClient(wordpress.Config{
		BaseURL:     cfg.WPURL,
		Username:    cfg.WPUsername,
		AppPassword: cfg.WPAppPassword,
	})
	if !wpClient.Configured() {
		slog.Warn("wordpress not configured, publishing disabled")
	}
	publisher := wordpress.NewPublisher(wpClient, articleStore, cache.NewLocker(valkeyClient))

	api := handlers.New(handlers.Deps{
		Articles:   articleStore,
		Categories: categoryStore,
		Topics:     topicStore,
		Logs:       logStore,
		Settings:   settingStore,
		Generator:  generator,
		Publisher:  publisher,
		WordPress:  wpClient,
		Providers:  aiRegistry,
		StatsCache: cache.NewJSONCache(valkeyClient, "stats:", cache.DefaultJSONTTL),
	})

	limiter := middleware.NewRateLimiter(cfg.GenerateRateLimit, time.Minute)
	defer limiter.Stop()

	r := router.New(api, limiter)

	// WriteTimeout covers a full article generation, which can take well
	// over a minute for long word ranges.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
