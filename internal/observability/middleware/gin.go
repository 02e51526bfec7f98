package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk/internal/observability/metrics"
)

type GinConfig struct {
	// SkipPaths are logged at debug level only (health probes and the like).
	SkipPaths   []string
	HTTPMetrics *metrics.HTTPMetrics
}

// Gin returns the request logging and metrics middleware.
func Gin(cfg GinConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		method := c.Request.Method
		path := c.Request.URL.Path
		route := c.FullPath()
		if route == "" {
			route = path
		}
		status := c.Writer.Status()

		if cfg.HTTPMetrics != nil {
			cfg.HTTPMetrics.RecordRequest(c.Request.Context(), method, route, status, duration)
		}

		level := slog.LevelInfo
		switch {
		case slices.Contains(cfg.SkipPaths, path):
			level = slog.LevelDebug
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		slog.LogAttrs(c.Request.Context(), level, "http request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", duration),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

// PanicRecoveryGin converts handler panics into 500 responses.
func PanicRecoveryGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "panic recovered in handler",
					slog.Any("panic", r),
					slog.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   "internal_error",
					"message": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
