package api

import (
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes

	"cafe_directory/internal/domain"     // Importing domain models
	"cafe_directory/internal/likes"      // Like relationship operations
	"cafe_directory/internal/middleware" // Context keys

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// ProfileRequest is the body for profile edits. Username and password are
// immutable after signup and deliberately absent here.
type ProfileRequest struct {
	Email       string `json:"email" binding:"required,email"` // Email must stay present and well-formed
	FirstName   string `json:"first_name" binding:"required"`  // First name
	LastName    string `json:"last_name" binding:"required"`   // Last name
	Description string `json:"description"`                    // Optional description
	ImageURL    string `json:"image_url"`                      // Optional image, blank resets to placeholder
}

// GetProfileHandler returns the current user and their liked cafes
func GetProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(middleware.ContextUserID).(uint) // RequireLogin guarantees presence
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		liked, err := likes.ListLiked(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch liked cafes"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":        user,            // The current user
			"full_name":   user.FullName(), // Display name
			"liked_cafes": liked,           // Cafes the user has liked
		})
	}
}

// UpdateProfileHandler edits the current user's profile
func UpdateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(middleware.ContextUserID).(uint) // RequireLogin guarantees presence
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		var req ProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		imageURL := req.ImageURL
		if imageURL == "" {
			imageURL = domain.DefaultProfileURL // Blank image resets to the placeholder
		}
		// Apply the edit as a single unit of work
		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Model(&user).Updates(map[string]any{
				"email":       req.Email,
				"first_name":  req.FirstName,
				"last_name":   req.LastName,
				"description": req.Description,
				"image_url":   imageURL,
			}).Error
		})
		if err != nil {
			// Email carries a unique constraint too
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email already taken"})
				return
			}
			logrus.WithField("user_id", user.ID).Errorf("failed to update profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		logrus.WithField("user_id", user.ID).Info("Profile updated")
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
