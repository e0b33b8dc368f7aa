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

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/lead-intel/internal/auth"
	"github.com/octobees/lead-intel/internal/cache"
	"github.com/octobees/lead-intel/internal/config"
	"github.com/octobees/lead-intel/internal/connector"
	"github.com/octobees/lead-intel/internal/database"
	"github.com/octobees/lead-intel/internal/enrichment"
	"github.com/octobees/lead-intel/internal/enrichment/scoring"
	"github.com/octobees/lead-intel/internal/genai"
	"github.com/octobees/lead-intel/internal/handler"
	middlewarepkg "github.com/octobees/lead-intel/internal/middleware"
	"github.com/octobees/lead-intel/internal/repository"
	"github.com/octobees/lead-intel/internal/router"
	"github.com/octobees/lead-intel/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	store := buildCacheStore(ctx, cfg)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	leadsRepo := repository.NewPGXLeadsRepository(pool)

	authService := service.NewAuthService(usersRepo, jwtManager)
	leadsService := service.NewLeadsService(leadsRepo)

	summarizer, detector := buildGenAI(cfg)
	enricher := enrichment.NewService(
		enrichment.NewApolloClient(cfg.ApolloAPIKey),
		summarizer,
		scoring.NewEngine(cfg.ScoreWeights),
	)

	connectors := buildConnectors(cfg, store)

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Leads:       handler.NewLeadsHandler(leadsService),
		AdminUpload: handler.NewAdminUploadHandler(leadsService),
		Enrich:      handler.NewEnrichHandler(enricher, detector, leadsService),
		Fetch:       handler.NewFetchHandler(connectors, enricher, leadsService),
	}
	if cfg.WorkerBaseURL != "" {
		httpClient := &http.Client{Timeout: 15 * time.Second}
		handlers.Jobs = handler.NewJobsHandler(httpClient, cfg.WorkerBaseURL)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// buildCacheStore prefers Redis and falls back to process memory so the API
// still serves when no Redis is configured.
func buildCacheStore(ctx context.Context, cfg *config.Config) cache.Store {
	if cfg.RedisAddr == "" {
		log.Printf("REDIS_ADDR not set, using in-memory cache")
		return cache.NewMemoryStore()
	}
	store, err := cache.NewRedisStore(ctx, cfg.RedisAddr)
	if err != nil {
		log.Printf("redis unavailable at %s, using in-memory cache: %v", cfg.RedisAddr, err)
		return cache.NewMemoryStore()
	}
	return store
}

// buildGenAI wires the language-model backed stages when an API key is
// available. Both stages stay nil otherwise; the pipeline degrades cleanly.
func buildGenAI(cfg *config.Config) (*enrichment.Summarizer, *enrichment.SignalDetector) {
	client, err := genai.NewOpenAIClient(genai.Config{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel})
	if err != nil {
		log.Printf("language model disabled: %v", err)
		return nil, nil
	}
	return enrichment.NewSummarizer(client), enrichment.NewSignalDetector(client)
}

func buildConnectors(cfg *config.Config, store cache.Store) []connector.Connector {
	sources := []connector.Connector{
		connector.NewDirectoryConnector(nil, cfg.DirectoryURL),
		connector.NewMapsConnector(cfg.PhoneRegion),
		connector.NewSocialConnector(),
	}

	wrapped := make([]connector.Connector, 0, len(sources))
	for _, src := range sources {
		wrapped = append(wrapped, connector.NewCachedConnector(src, store, cfg.CacheTTL))
	}
	return wrapped
}
