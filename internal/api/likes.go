package api

import (
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"cafe_directory/internal/domain"     // Importing domain models
	"cafe_directory/internal/likes"      // Like relationship operations
	"cafe_directory/internal/middleware" // Context keys

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// LikeRequest carries the cafe id for like and unlike
type LikeRequest struct {
	CafeID uint `json:"cafe_id" binding:"required"` // Target cafe
}

// cafeOr404 loads the cafe or writes a 404, mirroring the directory's
// detail route behavior for unknown ids
func cafeOr404(c *gin.Context, db *gorm.DB, cafeID uint) (*domain.Cafe, bool) {
	var cafe domain.Cafe
	if err := db.First(&cafe, cafeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cafe not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cafe"})
		}
		return nil, false
	}
	return &cafe, true
}

// LikeStatusHandler reports whether the current user has liked a cafe
func LikeStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(middleware.ContextUserID).(uint) // RequireLogin guarantees presence
		cafeID, err := strconv.Atoi(c.Query("cafe_id"))
		if err != nil || cafeID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cafe id"})
			return
		}
		if _, ok := cafeOr404(c, db, uint(cafeID)); !ok {
			return
		}
		liked, err := likes.IsLiked(db, userID, uint(cafeID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check like"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"likes": liked})
	}
}

// LikeHandler adds a cafe to the current user's likes. Repeating a like is
// a no-op, never an error.
func LikeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(middleware.ContextUserID).(uint) // RequireLogin guarantees presence
		var req LikeRequest                                  // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if _, ok := cafeOr404(c, db, req.CafeID); !ok {
			return
		}
		if _, err := likes.Like(db, userID, req.CafeID); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,     // User ID
				"cafe_id": req.CafeID, // Cafe ID
			}).Errorf("like failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like cafe"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"liked": req.CafeID})
	}
}

// UnlikeHandler removes a cafe from the current user's likes; 404 when the
// pair was never liked
func UnlikeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(middleware.ContextUserID).(uint) // RequireLogin guarantees presence
		var req LikeRequest                                  // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := likes.Unlike(db, userID, req.CafeID); err != nil {
			if errors.Is(err, likes.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Like not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": userID,     // User ID
				"cafe_id": req.CafeID, // Cafe ID
			}).Errorf("unlike failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike cafe"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"unliked": req.CafeID})
	}
}
