package main

import (
	"context"
	"log"

	"courier-chat/config"
	"courier-chat/internal/handler"
	"courier-chat/internal/redis"
	"courier-chat/internal/repository"
	"courier-chat/internal/server"
	"courier-chat/internal/services"
	"courier-chat/pkg/database"
	"courier-chat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	appMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		appMode = logger.ProductionMode
	}
	l := logger.New(appMode)
	logger.SetGlobalLogger(l)

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.ApplyRawMigrations(ctx, pool, "migrations"); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// The profile cache is best-effort: run without it if Redis is down.
	var cache *redis.CacheStore
	if err := redis.HealthCheck(redisClient); err != nil {
		l.Errorf("Redis unavailable, running without profile cache: %s", err)
		redisClient = nil
	} else {
		cache = redis.NewCacheStore(redisClient, redis.DefaultCacheConfig())
	}

	userRepo := repository.NewUserRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	authService := services.NewAuthService(userRepo, cache, l, cfg)
	userService := services.NewUserService(userRepo, cache, l)
	messageService := services.NewMessageService(messageRepo)

	handlers := &server.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Message: handler.NewMessageHandler(messageService),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, pool, redisClient)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
