package api

import (
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions

	"cafe_directory/internal/auth"       // Core auth operations
	"cafe_directory/internal/middleware" // Context keys
	"cafe_directory/internal/session"    // Session store
	"cafe_directory/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request and Response structs
type SignupRequest struct {
	Username    string `json:"username" binding:"required"`    // Username must be provided
	Email       string `json:"email" binding:"required,email"` // Email must be provided and well-formed
	FirstName   string `json:"first_name" binding:"required"`  // First name must be provided
	LastName    string `json:"last_name" binding:"required"`   // Last name must be provided
	Description string `json:"description"`                    // Optional description
	Password    string `json:"password" binding:"required"`    // Password must be provided
	ImageURL    string `json:"image_url"`                      // Optional profile image
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for the API token endpoint
type TokenResponse struct {
	Token string `json:"token"` // Bearer token for the JSON API
}

// isValidUsername checks that the username is 1-15 word characters
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[A-Za-z0-9_]{1,15}$`, username)
	return matched // Return whether it matched
}

// isValidPassword checks if the password length is between 6 and 50 characters
func isValidPassword(password string) bool {
	return len(password) >= 6 && len(password) <= 50 // Return true if length is valid
}

// setSessionCookie opens a session for the user and attaches the cookie
func setSessionCookie(c *gin.Context, sessions *session.Store, userID uint, secure bool) (*session.Data, error) {
	token, data, err := sessions.Create(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	// HttpOnly keeps the token out of script reach; the CSRF token is what
	// the frontend echoes back on mutations.
	c.SetCookie(session.CookieName, token, 0, "/", "", secure, true)
	return data, nil
}

// SignupHandler registers a new user and logs them in
func SignupHandler(db *gorm.DB, sessions *session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate username and password shape
		if !isValidUsername(req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 1-15 letters, digits or underscores"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 6-50 characters"})
			return
		}
		// Hash and store; uniqueness is checked by the database on commit
		user, err := auth.Register(db, auth.RegisterParams{
			Username:    req.Username,
			Email:       req.Email,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Description: req.Description,
			Password:    req.Password,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			// Duplicate username or email; registration intent already
			// disclosed the identity, so naming the collision is fine here.
			if errors.Is(err, auth.ErrDuplicateIdentity) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already taken"})
				return
			}
			logrus.WithField("username", req.Username).Errorf("signup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
			return
		}
		// Log the new user in right away
		data, err := setSessionCookie(c, sessions, user.ID, secure)
		if err != nil {
			logrus.WithField("user_id", user.ID).Errorf("failed to open session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
		}).Info("User registered") // Log registration
		c.JSON(http.StatusCreated, gin.H{"user": user, "csrf_token": data.CSRFToken})
	}
}

// LoginHandler authenticates a user and opens a session
func LoginHandler(db *gorm.DB, sessions *session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := auth.Authenticate(db, req.Username, req.Password)
		if err != nil {
			// Unknown user and wrong password get the same message
			if errors.Is(err, auth.ErrNotAuthenticated) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			logrus.Errorf("login failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		data, err := setSessionCookie(c, sessions, user.ID, secure)
		if err != nil {
			logrus.WithField("user_id", user.ID).Errorf("failed to open session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "csrf_token": data.CSRFToken})
	}
}

// LogoutHandler closes the current session. Idempotent: logging out when
// not logged in is a no-op, not an error.
func LogoutHandler(sessions *session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, exists := c.Get(middleware.ContextSessionToken); exists {
			if err := sessions.Delete(c.Request.Context(), token.(string)); err != nil {
				logrus.Errorf("failed to delete session: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
				return
			}
		}
		c.SetCookie(session.CookieName, "", -1, "/", "", secure, true) // Expire the cookie
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// TokenHandler exchanges credentials for a bearer token so API clients can
// call the JSON endpoints without cookies
func TokenHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := auth.Authenticate(db, req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrNotAuthenticated) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}
