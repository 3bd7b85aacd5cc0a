package middleware

import (
	"time"

	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// Logger middleware assigns a request id and logs each request once it completes
func Logger(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request.Header.Set(RequestIDHeader, requestID)
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		statusCode := c.Writer.Status()
		fields := map[string]any{
			"method":      method,
			"path":        path,
			"route":       c.FullPath(),
			"status":      statusCode,
			"latency_ms":  time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
			"request_id":  requestID,
			"status_text": statusText(statusCode),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.Errors()
		}

		switch {
		case statusCode >= 500:
			logger.Error("Request failed", fields)
		case statusCode >= 400:
			logger.Warn("Request rejected", fields)
		default:
			logger.Info("Request processed", fields)
		}
	}
}

// statusText returns the class of an HTTP status code
func statusText(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "Informational"
	case code >= 200 && code < 300:
		return "Success"
	case code >= 300 && code < 400:
		return "Redirect"
	case code >= 400 && code < 500:
		return "Client Error"
	default:
		return "Server Error"
	}
}
