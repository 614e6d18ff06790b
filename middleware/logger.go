package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDKey  = "request_id"
	loggerKey     = "logger"
	RequestHeader = "X-Request-ID"
)

// RequestLogger tags each request with an id and logs it when done.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Header(RequestHeader, rid)

		entry := log.WithField("requestId", rid)
		c.Set(loggerKey, entry)

		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"clientIp": c.ClientIP(),
		}
		if p, ok := CurrentPrincipal(c); ok {
			fields["userId"] = p.UserID
		}
		entry.WithFields(fields).Info("request")
	}
}

// LoggerFrom returns the request scoped logger, or the standard logger
// when RequestLogger is not installed.
func LoggerFrom(c *gin.Context) logrus.FieldLogger {
	if v, ok := c.Get(loggerKey); ok {
		if entry, ok := v.(logrus.FieldLogger); ok {
			return entry
		}
	}
	return logrus.StandardLogger()
}
