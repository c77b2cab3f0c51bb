package middleware

import (
	"crypto/subtle" // Constant-time comparison
	"net/http"      // HTTP status codes

	"cafe_directory/internal/session" // Session store

	"github.com/gin-gonic/gin" // Gin web framework
)

// CSRF verifies the per-session CSRF token on cookie-authenticated
// mutations. Bearer-token requests carry no cookie a browser could have
// attached silently, so they pass through. Anonymous requests also pass:
// RequireLogin rejects those with 401 before any state change.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get(ContextSession)
		if !exists {
			c.Next() // Not cookie-authenticated
			return
		}
		data := val.(*session.Data)
		sent := c.GetHeader(session.CSRFHeader)
		if sent == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(data.CSRFToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid CSRF token"})
			return
		}
		c.Next()
	}
}
