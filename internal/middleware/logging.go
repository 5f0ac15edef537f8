package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"posapi/internal/logger"
	"posapi/internal/uuid"
)

// CorrelationHeader carries the request correlation id in both directions.
const CorrelationHeader = "X-Correlation-ID"

const correlationIDKey = "correlationID"

// RequestLogging returns a Gin middleware that assigns each request a
// correlation id, stores it in the request context for downstream logging,
// echoes it in the response header and logs method, path, status, latency
// and client IP using Zap. A well-formed incoming X-Correlation-ID is reused.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		correlationID := uuid.CorrelationID(c.GetHeader(CorrelationHeader))
		c.Set(correlationIDKey, correlationID)
		c.Request = c.Request.WithContext(logger.WithCorrelationID(c.Request.Context(), correlationID))
		c.Writer.Header().Set(CorrelationHeader, correlationID)

		c.Next()

		latency := time.Since(start)
		logger.From(c.Request.Context()).Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// GetCorrelationID returns the correlation id assigned by RequestLogging.
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(correlationIDKey)
}
