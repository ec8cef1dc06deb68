package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/fitcheck/internal/infra/config"
	"github.com/yanqian/fitcheck/internal/infra/ratelimit"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, limiter ratelimit.Limiter) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		requestIDMiddleware(),
		requestLogger(handler.logger),
		recoveryMiddleware(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)
	router.NoMethod(methodNotAllowed)
	router.NoRoute(notFound)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(limiter, handler.logger))
	{
		api.POST("/analyze", handler.Analyze)
		api.POST("/analyze/chart", handler.AnalyzeChart)
		api.GET("/metrics", handler.Metrics)
		api.GET("/references", handler.Reference)
		api.GET("/usage", handler.Usage)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
