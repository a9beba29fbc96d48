package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"podelam/internal/shared/logger"
)

// Logger logs every request with latency and outcome. Client errors log at
// warn, server errors at error, the rest at debug to keep steady-state
// output quiet.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
		}

		if action, exists := c.Get("action"); exists {
			args = append(args, "action", action)
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Errorw("HTTP request completed with server error", args...)
		case status >= 400:
			log.Warnw("HTTP request completed with client error", args...)
		default:
			log.Debugw("HTTP request completed", args...)
		}
	}
}
