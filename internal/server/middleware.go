package server

import (
	"net/http"
	"time"

	"marketplace/services/market/helpers"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// IdentityMiddleware resolves the authenticated principal from the
// X-User-ID header set by the upstream identity provider. Ownership and role
// checks stay in the services; this only establishes who is calling.
func IdentityMiddleware(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"status":  http.StatusUnauthorized,
			"message": "missing X-User-ID header",
		})
		return
	}
	c.Set(helpers.UserIDKey, userID)
	c.Next()
}
