package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AJV009/oracle11/internal/celebrations"
	"github.com/AJV009/oracle11/internal/common/clock"
	"github.com/AJV009/oracle11/internal/common/uuid"
	"github.com/AJV009/oracle11/internal/handlers/api"
	binRepo "github.com/AJV009/oracle11/internal/repositories/bin"
	cacheRepo "github.com/AJV009/oracle11/internal/repositories/cache"
	sessionRepo "github.com/AJV009/oracle11/internal/repositories/session"
	documentService "github.com/AJV009/oracle11/internal/services/document"
	gameService "github.com/AJV009/oracle11/internal/services/game"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	if getEnv("LOG_PRETTY", "") != "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	// Load the celebrations registry
	registry, err := celebrations.Load(getEnv("CELEBRATIONS_FILE", "celebrations.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load celebrations")
	}

	adminPasswordHash := getEnv("ADMIN_PASSWORD_HASH", "")
	if adminPasswordHash == "" {
		log.Fatal().Msg("ADMIN_PASSWORD_HASH environment variable is required")
	}

	binAPIKey := getEnv("BIN_API_KEY", "")
	if binAPIKey == "" {
		log.Fatal().Msg("BIN_API_KEY environment variable is required")
	}

	systemClock := &clock.DefaultClock{}

	// Initialize repositories
	binClient, err := binRepo.NewClient(&binRepo.Config{
		BaseURL:   getEnv("BIN_API_BASE_URL", "https://api.jsonbin.io/v3/b"),
		AccessKey: binAPIKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create document client")
	}

	documentCache, err := cacheRepo.NewRedis(&cacheRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create document cache")
	}

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session repository")
	}

	// Initialize services
	documents, err := documentService.New(&documentService.Config{
		BinRepo:   binClient,
		CacheRepo: documentCache,
		Clock:     systemClock,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create document service")
	}

	games, err := gameService.New(&gameService.Config{
		DocumentService: documents,
		Clock:           systemClock,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game service")
	}

	// Initialize the API handler
	handler, err := api.New(&api.Config{
		GameService:       games,
		SessionRepo:       sessions,
		Registry:          registry,
		AdminPasswordHash: adminPasswordHash,
		UUID:              uuid.New(),
		Clock:             systemClock,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create API handler")
	}

	addr := getEnv("LISTEN_ADDR", ":8080")
	server := &http.Server{
		Addr:    addr,
		Handler: handler.Routes(),
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting oracle11 server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Keep serving until interrupted
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
