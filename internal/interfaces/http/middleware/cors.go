package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"podelam/internal/shared/constants"
)

var allowedHeaders = strings.Join([]string{
	constants.HeaderContentType,
	constants.HeaderXUserID,
	constants.HeaderXAuthToken,
	constants.HeaderXSessionID,
}, ", ")

// CORS handles cross-origin requests for the browser frontend. The header
// set is the one the frontend already sends; preflights are answered with an
// unconditional empty 200 regardless of path or origin, matching the
// behavior the clients were built against.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		c.Header("Access-Control-Allow-Origin", allowedOrigin(origin, allowedOrigins))
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

func allowedOrigin(origin string, allowedOrigins []string) string {
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if origin == allowed {
			return origin
		}
	}
	return ""
}
