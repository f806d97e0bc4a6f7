package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/BoualamHamza/InterviewSim/internal/config"
	"github.com/BoualamHamza/InterviewSim/internal/gateway"
	"github.com/BoualamHamza/InterviewSim/internal/handlers"
	"github.com/BoualamHamza/InterviewSim/internal/interview"
	"github.com/BoualamHamza/InterviewSim/internal/jobdesc"
	"github.com/BoualamHamza/InterviewSim/internal/llm"
	_ "github.com/BoualamHamza/InterviewSim/internal/llm/gemini"
	_ "github.com/BoualamHamza/InterviewSim/internal/llm/openai"
	"github.com/BoualamHamza/InterviewSim/internal/metrics"
	"github.com/BoualamHamza/InterviewSim/internal/prompts"
	"github.com/BoualamHamza/InterviewSim/internal/routers"
	"github.com/BoualamHamza/InterviewSim/internal/session"
)

func newStore(cfg *config.Config, logger *zap.Logger) session.Store {
	if cfg.RedisAddr == "" {
		return session.NewMemoryStore(cfg.SessionTTL)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, falling back to in-memory session store",
			zap.String("addr", cfg.RedisAddr), zap.Error(err))
		return session.NewMemoryStore(cfg.SessionTTL)
	}

	logger.Info("using redis session store", zap.String("addr", cfg.RedisAddr))
	return session.NewRedisStore(rdb, cfg.SessionTTL)
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.Int("max_turns", cfg.MaxTurns))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration. A missing API key is not fatal:
	// the service still serves setup and health endpoints, and the channel
	// gateway rejects connections with its backend-unavailable close code.
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Error("Failed to initialize AI provider, interview channels will reject connections", zap.Error(err))
	}

	store := newStore(cfg, logger)
	if memStore, ok := store.(*session.MemoryStore); ok {
		defer memStore.Close()
	}

	var textGenerator interview.TextGenerator
	if aiProvider != nil {
		textGenerator = llm.NewGenerator(aiProvider, promptManager, logger)
	}

	interviewHandler := handlers.NewInterviewHandler(store, logger)
	jobDescriptionHandler := handlers.NewJobDescriptionHandler(jobdesc.NewCleaner(), logger)
	healthHandler := handlers.NewHealthHandler(aiProvider, promptManager, cfg)
	gw := gateway.New(store, textGenerator, cfg.MaxTurns, cfg.GenerationTimeout, logger)

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer)
	router.Use(metrics.Middleware)

	routers.Register(router, interviewHandler, jobDescriptionHandler, healthHandler, gw)

	serverAddr := ":" + cfg.Port

	// http server with timeouts
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("interview service shutting down...")

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("interview service exited")
}
