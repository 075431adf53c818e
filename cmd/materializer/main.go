package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cadenza-app/cadenza/internal/domain/calendar"
	"github.com/cadenza-app/cadenza/internal/infrastructure/cache"
	"github.com/cadenza-app/cadenza/internal/infrastructure/persistence/postgres/connection"
	"github.com/cadenza-app/cadenza/internal/infrastructure/persistence/postgres/migrations"
	"github.com/cadenza-app/cadenza/internal/infrastructure/scheduler"
	"github.com/cadenza-app/cadenza/pkg/config"
	"github.com/cadenza-app/cadenza/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	var redisClient *cache.RedisClient
	if cfg.Redis.Host != "" {
		redisClient, err = cache.NewRedisClient(cache.NewConfigFromEnv(cfg))
		if err != nil {
			// Materialization works without sync events; degrade
			// instead of refusing to start.
			log.Warn("Redis unavailable, sync events disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
		}
	}

	repo := calendar.NewRepository(db.DB)
	svc := calendar.NewService(repo, redisClient, log.Logger)

	sched := scheduler.NewScheduler(svc, cfg.Generation.Horizon(), cfg.Generation.RunInterval, log)
	sched.Start()

	if cfg.Metrics.Enabled {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			log.Info("Serving metrics", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				log.Error("Metrics server stopped", zap.Error(err))
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down materializer")
}
