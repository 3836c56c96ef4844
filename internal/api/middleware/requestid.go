package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
)

// RequestIDHeader carries the request correlation id.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID assigns every request a req_<ULID> id (reusing a valid incoming one),
// echoes it in the response, stores a request-scoped logger in the
// request context and logs the completed request.
func RequestID(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if !id.IsRequestID(requestID) {
			requestID = id.NewRequestID().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		reqLogger := logger.With(zap.String("request_id", requestID))
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), reqLogger))

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLogger.Error("Request failed", fields...)
		case status >= 400:
			reqLogger.Warn("Request rejected", fields...)
		default:
			reqLogger.Debug("Request completed", fields...)
		}
	}
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
