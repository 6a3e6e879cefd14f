package http

import (
	"fair_rps/internal/config"
	"fair_rps/internal/http/handlers"
	"fair_rps/internal/http/middleware"
	"fair_rps/internal/service"
	"fair_rps/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts the round API. redisClient may be nil, in which case
// rate limits are kept in process memory.
func RegisterRoutes(r *gin.Engine, rounds *service.RoundService, cfg *config.Config, redisClient *redis.Client, version string) {
	h := handlers.NewHandler(rounds)

	storeName := "memory"
	if redisClient != nil {
		storeName = "redis"
	}
	healthHandler := handlers.NewHealthHandler(rounds, storeName, version)

	// Health checks and metrics (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(redisClient, cfg.APIRateLimit, cfg.APIRateWindow))
	v1.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	{
		v1.POST("/rounds", h.StartRound)
		v1.POST("/rounds/:id/move", h.PlayRound)
		v1.POST("/verify", h.Verify)
		v1.GET("/rules", h.Rules)
	}

	r.GET("/ws", middleware.RateLimit(redisClient, cfg.APIRateLimit, cfg.APIRateWindow), ws.HandleWS(rounds, cfg.AllowedOrigin))
}

// CORS echoes the request origin, or only allowedOrigin when it is set.
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (allowedOrigin == "" || origin == allowedOrigin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
