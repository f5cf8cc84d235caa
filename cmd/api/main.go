package main

import (
	"context"
	"strings"
	"time"

	"nexora-chat/config"
	"nexora-chat/internal/ratelimit"
	"nexora-chat/internal/redis"
	"nexora-chat/internal/repository"
	"nexora-chat/internal/server"
	"nexora-chat/internal/services"
	ws "nexora-chat/internal/websocket"
	"nexora-chat/pkg/database"
	"nexora-chat/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	// The store must be reachable before serving anything.
	db, err := database.Open(cfg)
	if err != nil {
		l.Fatalf("Database connection error: %v", err)
	}
	defer database.Close(db)
	l.Logger.Info("Connected to database", zap.String("driver", cfg.DBDriver))

	if err := database.Migrate(db); err != nil {
		l.Fatalf("Failed to apply migrations: %v", err)
	}

	tables, err := database.ListTables(db)
	switch {
	case err != nil:
		l.Errorf("Error listing tables: %v", err)
	case len(tables) == 0:
		l.Infof("No tables found. Database is empty.")
	default:
		l.Infof("Available tables: %s", strings.Join(tables, ", "))
	}

	limiter := newLimiter(cfg, l)

	service := services.NewUserService(repository.NewUserRepository(db))
	hub := ws.NewHub()

	srv := server.New(cfg, l, hub, limiter)
	srv.SetupRoutes(server.NewHandlers(cfg, l, service, hub, limiter))

	if err := srv.Start(); err != nil {
		l.Fatalf("Server error: %v", err)
	}
}

// newLimiter prefers the shared redis limiter and falls back to an
// in-process one when redis is not configured or unreachable.
func newLimiter(cfg *config.Config, l *logger.Logger) ratelimit.Limiter {
	if cfg.RateLimitPerMin <= 0 {
		l.Infof("Rate limiting disabled")
		return ratelimit.Disabled{}
	}
	if !cfg.RedisEnabled() {
		return ratelimit.NewLocal(cfg.RateLimitPerMin)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	client, err := redis.NewClient(ctx, redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		l.Warnf("Redis unavailable, using in-process rate limiting: %v", err)
		return ratelimit.NewLocal(cfg.RateLimitPerMin)
	}
	l.Infof("Using redis rate limiting at %s:%s", cfg.RedisHost, cfg.RedisPort)
	rlCfg := redis.DefaultRateLimitConfig()
	rlCfg.Limit = cfg.RateLimitPerMin
	return redis.NewRateLimiter(client, rlCfg)
}
