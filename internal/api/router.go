package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fact-check-board/internal/config"
	"github.com/fact-check-board/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ClientIDHeader identifies the browser or client casting votes
const ClientIDHeader = "X-Client-ID"

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, store Pinger, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	newsHandler := NewNewsHandler(services, cfg, log)
	voteHandler := NewVoteHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(store))

	// API v1
	v1 := router.Group("/v1")
	{
		news := v1.Group("/news")
		{
			news.GET("", newsHandler.ListNews)
			news.POST("", newsHandler.CreateNews)
			news.GET("/:id", newsHandler.GetNews)
			news.GET("/:id/comments", newsHandler.ListComments)
			news.POST("/:id/votes", voteHandler.CreateVote)
		}

		v1.GET("/stats", newsHandler.GetStats)
	}

	return router
}

// healthCheck returns the health status, including store reachability
func healthCheck(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := contextWithTimeout(c, 2*time.Second)
		defer cancel()

		status, code := "healthy", http.StatusOK
		storeStatus := "up"
		if store != nil {
			if err := store.Ping(ctx); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
				storeStatus = "down"
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"store":     storeStatus,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "fact-check-board",
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("client_id", c.GetHeader(ClientIDHeader)).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+ClientIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
