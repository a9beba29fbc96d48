package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"podelam/internal/infrastructure/ratelimit"
	"podelam/internal/shared/config"
	"podelam/internal/shared/logger"
)

// RateLimit gates requests per client IP and route. The limiter failing
// (redis down) lets the request through: the trainer endpoints must not go
// dark because the limiter store did.
func RateLimit(limiter ratelimit.RateLimiter, cfg *config.RateLimitConfig, log logger.Interface) gin.HandlerFunc {
	limits := ratelimit.Limits{
		RequestsPerMinute: cfg.RequestsPerMinute,
		RequestsPerHour:   cfg.RequestsPerHour,
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", c.ClientIP(), c.Request.URL.Path)

		allowed, err := limiter.Allow(c.Request.Context(), key, limits)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
