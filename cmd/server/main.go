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

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shipment-tracking/internal/api"
	"shipment-tracking/internal/cache"
	"shipment-tracking/internal/config"
	"shipment-tracking/internal/database"
	"shipment-tracking/internal/logger"
	"shipment-tracking/internal/repository"
)

func main() {
	cfg := config.LoadConfig()

	zl, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatal("failed to init logger: ", err)
	}
	defer zl.Sync()

	ctx := context.Background()

	pool, err := database.ConnectDB(ctx, cfg.Database)
	if err != nil {
		zl.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, zl); err != nil {
		zl.Fatal("migrations failed", zap.Error(err))
	}

	repos := api.Repositories{
		Users:     repository.NewUserRepository(pool),
		Items:     repository.NewItemRepository(pool),
		Shipments: repository.NewShipmentRepository(pool),
	}

	if cfg.Redis.Enabled() {
		rdb, err := cache.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			zl.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()

		repos = withCache(repos, rdb, cfg.Redis.TTL, zl)
		zl.Info("read cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TTL))
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(zl, pool, repos),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zl.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}

func withCache(repos api.Repositories, rdb *redis.Client, ttl time.Duration, zl *zap.Logger) api.Repositories {
	return api.Repositories{
		Users:     cache.NewCachedRepository(repos.Users, rdb, "users", ttl, zl),
		Items:     cache.NewCachedRepository(repos.Items, rdb, "items", ttl, zl),
		Shipments: cache.NewCachedRepository(repos.Shipments, rdb, "shipments", ttl, zl),
	}
}
