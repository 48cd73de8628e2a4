package logger

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ginLoggerKey is the gin context key the request-scoped logger is stored
// under. GetGinLogger reads it back.
const ginLoggerKey = "logger"

// GinMiddleware returns a gin middleware that writes one access-log entry
// per request. The request-scoped logger carries the request ID and is made
// available both through the gin context and the request's context.Context.
func GinMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := requestIDFromGin(c)
		reqLogger := logger.With(
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		)

		c.Set(ginLoggerKey, reqLogger)

		ctx := WithContext(c.Request.Context(), reqLogger)
		if requestID != "" {
			ctx = context.WithValue(ctx, RequestIDKey, requestID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		logAtStatusLevel(reqLogger, status, fields)
	}
}

// Recovery returns a gin middleware that recovers from panics, logs the
// stack, and responds 500
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.String("request_id", requestIDFromGin(c)),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", err),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// GetGinLogger retrieves the request-scoped logger from the gin context,
// falling back to a no-op logger outside the middleware chain
func GetGinLogger(c *gin.Context) *zap.Logger {
	if logger, exists := c.Get(ginLoggerKey); exists {
		if l, ok := logger.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

// requestIDFromGin reads the request ID placed in the gin context by the
// RequestID middleware, empty if it has not run
func requestIDFromGin(c *gin.Context) string {
	value, _ := c.Get(string(RequestIDKey))
	requestID, _ := value.(string)
	return requestID
}

func logAtStatusLevel(logger *zap.Logger, status int, fields []zap.Field) {
	const msg = "HTTP Request"
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error(msg, fields...)
	case status >= http.StatusBadRequest:
		logger.Warn(msg, fields...)
	default:
		logger.Info(msg, fields...)
	}
}
