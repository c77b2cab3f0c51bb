package middleware

import (
	"errors"

	"cafe_directory/internal/domain"  // Importing domain models
	"cafe_directory/internal/session" // Session store

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Context keys set by the auth middlewares
const (
	ContextUserID       = "userID"       // uint, the resolved user's id
	ContextSession      = "session"      // *session.Data for cookie-authenticated requests
	ContextSessionToken = "sessionToken" // string, the raw cookie token
)

// SessionAuth resolves the session cookie to a user once per request and
// stores the id in the context. It never aborts: an absent cookie, an
// expired session, or a session pointing at a deleted user all leave the
// request anonymous.
func SessionAuth(db *gorm.DB, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.Next() // No cookie, stay anonymous
			return
		}
		data, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.Next() // Unknown or expired session, stay anonymous
			return
		}
		var user domain.User
		if err := db.First(&user, data.UserID).Error; err != nil {
			// Session references a deleted user; treat as anonymous
			// rather than failing the request.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				_ = sessions.Delete(c.Request.Context(), token)
			}
			c.Next()
			return
		}
		c.Set(ContextUserID, user.ID)      // Resolved user id
		c.Set(ContextSession, data)        // Session data, needed for CSRF checks
		c.Set(ContextSessionToken, token)  // Raw token, needed for logout
		c.Next()                           // Proceed to the next handler
	}
}

// RequireLogin aborts with 401 when no authenticated user was resolved by
// SessionAuth or JWTAuth
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserID); !exists {
			c.AbortWithStatusJSON(401, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
