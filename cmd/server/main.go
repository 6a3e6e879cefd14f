package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fair_rps/internal/config"
	httpServer "fair_rps/internal/http"
	"fair_rps/internal/logger"
	"fair_rps/internal/repository"
	"fair_rps/internal/service"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}
	logger.Init(os.Stdout, cfg.LogLevel, cfg.LogJSON)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var (
		redisClient *redis.Client
		repo        repository.RoundRepository
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis not reachable yet", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()
		repo = repository.NewRedisRoundRepository(redisClient)
		logger.Info("round store: redis", "addr", cfg.RedisAddr)
	} else {
		mem := repository.NewMemoryRoundRepository()
		mem.StartCleanup(ctx, time.Minute)
		repo = mem
		logger.Info("round store: memory")
	}

	rounds, err := service.NewRoundService(repo, service.RoundConfig{
		Moves:    cfg.Moves,
		KeyBytes: cfg.KeyBytes,
		TTL:      cfg.RoundTTL,
		MaxMoves: cfg.MaxMoves,
	})
	if err != nil {
		logger.Fatal("round service", "error", err)
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpServer.CORS(cfg.AllowedOrigin))
	httpServer.RegisterRoutes(r, rounds, cfg, redisClient, version)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "moves", cfg.Moves, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
