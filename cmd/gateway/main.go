package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/automarketing/content-gateway/internal/gateway/handlers"
	"github.com/automarketing/content-gateway/internal/gateway/logstore"
	"github.com/automarketing/content-gateway/internal/gateway/openrouter"
	"github.com/automarketing/content-gateway/internal/gateway/ratelimit"
	"github.com/automarketing/content-gateway/internal/shared/config"
	"github.com/automarketing/content-gateway/internal/shared/database"
	"github.com/automarketing/content-gateway/internal/shared/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting content gateway on port %s (env: %s)", cfg.Port, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Log store: Postgres when configured, in-memory otherwise.
	var store logstore.Store
	if cfg.DatabaseURL != "" {
		db, err := database.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.Migrate(ctx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		store = db
		log.Println("✓ Connected to PostgreSQL")
	} else {
		store = logstore.NewMemory()
		log.Println("⚠ DATABASE_URL not set, request logs are kept in memory only")
	}
	defer store.Close()

	// Rate-limit counters: Redis when configured, in-memory otherwise.
	var counters ratelimit.CounterStore
	if cfg.RedisURL != "" {
		redisClient, err := redis.New(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		counters = ratelimit.NewRedisStore(redisClient)
		log.Println("✓ Connected to Redis")
	} else {
		counters = ratelimit.NewMemoryStore()
		log.Println("⚠ REDIS_URL not set, rate-limit counters are per-process")
	}

	generalLimiter := ratelimit.New(counters, ratelimit.Policy{
		Name: "general", Max: cfg.GeneralLimit, Window: cfg.GeneralWindow,
	})
	apiLimiter := ratelimit.New(counters, ratelimit.Policy{
		Name: "api", Max: cfg.APILimit, Window: cfg.APIWindow,
	})
	contentLimiter := ratelimit.New(counters, ratelimit.Policy{
		Name: "content", Max: cfg.ContentLimit, Window: cfg.ContentWindow,
		Message: "Too many content generation requests. Please try again later.",
	})

	// OpenRouter client. A missing key is not fatal; the service boots
	// and reports unconfigured on /api/openrouter/status.
	client := openrouter.New(openrouter.Config{
		APIKey:       cfg.OpenRouterAPIKey,
		DefaultModel: cfg.DefaultModel,
		SiteURL:      cfg.SiteURL,
		SiteName:     cfg.SiteName,
		Timeout:      cfg.UpstreamTimeout,
	})
	if client.IsConfigured() {
		log.Println("✓ OpenRouter client configured")
	} else {
		log.Println("⚠ OPENROUTER_API_KEY not set, generation endpoints will return 503")
	}

	chatHandler := handlers.NewChatHandler(client, logstore.NewLogger(store), cfg.IsDevelopment())
	logsHandler := handlers.NewLogsHandler(store, cfg.IsDevelopment())
	statusHandler := handlers.NewStatusHandler(client, cfg.Env)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(handlers.RecoveryMiddleware)
	if cfg.IsDevelopment() {
		r.Use(handlers.CORSMiddleware)
	}
	r.Use(generalLimiter.Middleware)

	r.NotFound(handlers.NotFoundHandler)

	r.Get("/health", statusHandler.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)

		r.Route("/openrouter", func(r chi.Router) {
			r.Get("/status", statusHandler.HandleStatus)
			r.Get("/models", statusHandler.HandleModels)

			r.Get("/logs/recent", logsHandler.HandleRecent)
			r.Get("/logs/stats", logsHandler.HandleStats)
			r.Get("/logs/{id}", logsHandler.HandleGetByID)

			// Generation routes carry the strictest limiter.
			r.Group(func(r chi.Router) {
				r.Use(contentLimiter.Middleware)

				r.Post("/chat", chatHandler.HandleChat)
				r.Post("/marketing/generate", chatHandler.HandleGenerate)
				r.Post("/marketing/optimize", chatHandler.HandleOptimize)
				r.Post("/marketing/variations", chatHandler.HandleVariations)
			})
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on http://localhost:%s", cfg.Port)
		log.Println("   GET  /health                              - Health check")
		log.Println("   GET  /api/openrouter/status               - Provider status")
		log.Println("   GET  /api/openrouter/models               - Model catalog")
		log.Println("   POST /api/openrouter/chat                 - Chat passthrough")
		log.Println("   POST /api/openrouter/marketing/generate   - Generate marketing content")
		log.Println("   POST /api/openrouter/marketing/optimize   - Optimize existing content")
		log.Println("   POST /api/openrouter/marketing/variations - Generate variations")
		log.Println("   GET  /api/openrouter/logs/recent          - Recent request logs")
		log.Println("   GET  /api/openrouter/logs/stats           - Usage statistics")
		log.Println("   GET  /api/openrouter/logs/{id}            - Single log entry")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
