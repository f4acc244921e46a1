package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/terplist/terplist/internal/infrastructure/cache"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/utils"
)

// RateLimit throttles write endpoints per client IP using the redis fixed
// window counter. Redis failures fail open: availability over strictness for
// a voting endpoint.
func RateLimit(limiter *cache.RateLimiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warnw("rate limiter unavailable, failing open", "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
