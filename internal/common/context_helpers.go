package common

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetRequestIDFromContext returns the request id set by the logging
// middleware, or an empty string.
func GetRequestIDFromContext(c *gin.Context) string {
	val, exists := c.Get(RequestIDKey)
	if !exists {
		return ""
	}
	id, ok := val.(string)
	if !ok {
		return ""
	}
	return id
}

// LoggerFromContext returns the request-scoped logger if one was attached,
// otherwise fallback annotated with the request id.
func LoggerFromContext(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if val, exists := c.Get(LoggerContextKey); exists {
		if l, ok := val.(*zap.Logger); ok {
			return l
		}
	}
	if id := GetRequestIDFromContext(c); id != "" {
		return fallback.With(zap.String("request_id", id))
	}
	return fallback
}
