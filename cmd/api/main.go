package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-music-gateway/internal/config"
	"github.com/go-music-gateway/internal/infrastructure/cache"
	"github.com/go-music-gateway/internal/infrastructure/dynamo"
	"github.com/go-music-gateway/internal/infrastructure/spotify"
	"github.com/go-music-gateway/internal/infrastructure/sqlite"
	"github.com/go-music-gateway/internal/infrastructure/token"
	transporthttp "github.com/go-music-gateway/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// SQLite record store (creates the schema if it doesn't exist).
	db, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := sqlite.Bootstrap(db); err != nil {
		logger.Error("bootstrap database", "err", err)
		os.Exit(1)
	}

	// DynamoDB search-history table (created if it doesn't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Token provider. The gateway cannot verify credentials without a secret.
	tokenProvider, err := token.NewProvider(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		logger.Error("token provider", "err", err)
		os.Exit(1)
	}

	// Cache: Redis when configured, in-process otherwise.
	var cacheStore cache.Store
	if cfg.RedisAddr != "" {
		cacheStore = cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		logger.Info("cache backend", "type", "redis", "addr", cfg.RedisAddr)
	} else {
		cacheStore = cache.NewMemory()
		logger.Info("cache backend", "type", "memory")
	}

	upstream := spotify.NewProvider(cfg, logger)

	deps := &transporthttp.Deps{
		UserRepo:      sqlite.NewUserRepo(db),
		TrackRepo:     sqlite.NewTrackRepo(db),
		PlaylistRepo:  sqlite.NewPlaylistRepo(db),
		ProfileRepo:   sqlite.NewProfileRepo(db),
		HistoryRepo:   dynamo.NewSearchHistoryRepo(dynamoClient, cfg.DynamoTables.SearchHistory),
		Cache:         cacheStore,
		Upstream:      upstream,
		TokenProvider: tokenProvider,
		Logger:        logger,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
