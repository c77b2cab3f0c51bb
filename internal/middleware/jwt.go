package middleware

import (
	"strings" // String manipulation

	"cafe_directory/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// JWTAuth resolves a Bearer token for API clients that do not carry the
// session cookie. Runs after SessionAuth and defers to it: if a session
// already resolved a user, the header is ignored. Invalid tokens leave the
// request anonymous; RequireLogin does the aborting.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserID); exists {
			c.Next() // Session cookie already won
			return
		}
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			c.Next()
			return
		}
		c.Set(ContextUserID, claims.UserID) // Store userID in context
		c.Next()                            // Proceed to the next handler
	}
}
