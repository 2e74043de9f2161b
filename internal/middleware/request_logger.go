package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mantonx/paradiso/internal/logger"
)

// RequestLogger logs all HTTP requests with a per-request id
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for health checks
		if c.Request.URL.Path == "/api/health" {
			c.Next()
			return
		}

		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		logger.DebugStructured("HTTP request",
			logger.String("request_id", requestID),
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.String("query", c.Request.URL.RawQuery),
			logger.Int("status", c.Writer.Status()),
			logger.String("duration", duration.String()),
			logger.Int("size", c.Writer.Size()),
			logger.String("ip", c.ClientIP()))
	}
}

// ErrorLogger logs errors attached to the gin context
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				logger.ErrorStructured("Request error",
					logger.String("path", c.Request.URL.Path),
					logger.String("method", c.Request.Method),
					logger.String("error", err.Error()))
			}
		}
	}
}
