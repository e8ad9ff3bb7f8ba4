package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hivewallet/authority-api/logger"
	"go.uber.org/zap"
)

// CorrelationIDHeader carries the request correlation ID in both directions.
const CorrelationIDHeader = "X-Correlation-ID"

const correlationIDKey = "correlationID"

// contextKey keeps the request-context value from colliding with other
// packages' string keys.
type contextKey string

const correlationIDContextKey contextKey = correlationIDKey

// CorrelationID tags every request with a correlation ID: the caller's, or a
// fresh one. The ID rides on the gin context, the request context and the
// response header, and every request is logged once on arrival.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(correlationIDKey, id)
		c.Header(CorrelationIDHeader, id)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), correlationIDContextKey, id))

		logger.Info("Request received",
			zap.String("correlation_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)

		c.Next()
	}
}

// GetCorrelationID returns the request's correlation ID, or "" outside the
// middleware.
func GetCorrelationID(c *gin.Context) string {
	id, _ := c.Value(correlationIDKey).(string)
	return id
}

// CorrelationIDFromContext reads the correlation ID off a request context.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDContextKey).(string)
	return id
}
