package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/terplist/terplist/internal/shared/logger"
)

// RequestLogging logs one line per request with latency and status.
func RequestLogging(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Infow("request completed",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
