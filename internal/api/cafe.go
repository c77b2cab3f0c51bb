package api

import (
	"context"  // Context for Redis operations
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"cafe_directory/internal/domain" // Importing domain models
	"cafe_directory/internal/maps"   // Static map fetcher
	"cafe_directory/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library

	"github.com/sirupsen/logrus" // Logging library
)

const cafeCachePrefix = "cafes:" // Every cafe cache key lives under this prefix

// CafeRequest is the body for cafe create and edit, admin only
type CafeRequest struct {
	Name        string `json:"name" binding:"required"`        // Cafe name
	Description string `json:"description" binding:"required"` // Description
	URL         string `json:"url" binding:"required"`         // Website
	Address     string `json:"address" binding:"required"`     // Street address
	CityCode    string `json:"city_code" binding:"required"`   // City code, must reference a seeded city
	ImageURL    string `json:"image_url"`                      // Optional image
}

// ListCitiesHandler returns the static city reference data
func ListCitiesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cities []domain.City
		if err := db.Order("name").Find(&cities).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cities"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cities": cities})
	}
}

// ListCafesHandler returns cafes ordered by name with optional city filter
func ListCafesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Create a cache key based on filter and pagination parameters
		cacheKey := cafeCachePrefix + "list:city=" + c.DefaultQuery("city", "") +
			":page=" + c.DefaultQuery("page", "1") + ":size=" + c.DefaultQuery("page_size", "20")
		// Try to get cached response
		var cached struct {
			Cafes      []domain.Cafe `json:"cafes"`       // List of cafes
			Page       int           `json:"page"`        // Current page
			PageSize   int           `json:"page_size"`   // Page size
			Total      int64         `json:"total"`       // Total number of cafes
			TotalPages int           `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"cafes":       cached.Cafes,      // List of cafes
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of cafes
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		offset := (page - 1) * pageSize            // Calculate offset for pagination
		query := db.Model(&domain.Cafe{})          // Start building the query
		if city := c.Query("city"); city != "" {
			query = query.Where("city_code = ?", city) // Filter by city
		}
		var total int64 // Total cafe count
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count cafes"})
			return
		}
		var cafes []domain.Cafe // Slice to hold cafes
		// Preload City, order alphabetically, apply offset and limit
		if err := query.Preload("City").Order("name").Offset(offset).Limit(pageSize).Find(&cafes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cafes"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		respData := gin.H{
			"cafes":       cafes,      // List of cafes
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of cafes
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}

// GetCafeHandler returns the detail for one cafe, including its "City, ST"
// display string and static map, downloading the map if needed
func GetCafeHandler(db *gorm.DB, fetcher *maps.Fetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cafe id"})
			return
		}
		var cafe domain.Cafe
		if err := db.Preload("City").First(&cafe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cafe not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cafe"})
			return
		}
		mapPath := fetcher.Ensure(cafe.ID, cafe.Address, cafe.City.Name, cafe.City.State)
		c.JSON(http.StatusOK, gin.H{
			"cafe":       cafe,             // The cafe
			"city_state": cafe.CityState(), // "City, ST" display string
			"map":        mapPath,          // Local static map path, empty when unavailable
		})
	}
}

// CreateCafeHandler creates a cafe. Reached only through the admin gate.
func CreateCafeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CafeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// The city reference must resolve to an existing city
		var city domain.City
		if err := db.First(&city, "code = ?", req.CityCode).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown city"})
			return
		}
		imageURL := req.ImageURL
		if imageURL == "" {
			imageURL = domain.DefaultImageURL // Placeholder when no image supplied
		}
		cafe := domain.Cafe{
			Name:        req.Name,
			Description: req.Description,
			URL:         req.URL,
			Address:     req.Address,
			CityCode:    req.CityCode,
			ImageURL:    imageURL,
		}
		if err := db.Create(&cafe).Error; err != nil {
			logrus.WithField("name", req.Name).Errorf("failed to create cafe: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cafe"})
			return
		}
		// Log cafe creation
		logrus.WithFields(logrus.Fields{
			"cafe_id": cafe.ID,   // Cafe ID
			"name":    cafe.Name, // Cafe name
		}).Info("Cafe created")
		// Drop every cached cafe listing and detail
		_ = utils.DeleteCacheByPrefix(context.Background(), rdb, cafeCachePrefix)
		c.JSON(http.StatusCreated, gin.H{"cafe": cafe})
	}
}

// UpdateCafeHandler edits a cafe. Reached only through the admin gate.
func UpdateCafeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cafe id"})
			return
		}
		var cafe domain.Cafe
		if err := db.First(&cafe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cafe not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cafe"})
			return
		}
		var req CafeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var city domain.City
		if err := db.First(&city, "code = ?", req.CityCode).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown city"})
			return
		}
		imageURL := req.ImageURL
		if imageURL == "" {
			imageURL = domain.DefaultImageURL // Blank image falls back to the placeholder
		}
		// Apply the edit as a single unit of work
		err = db.Transaction(func(tx *gorm.DB) error {
			return tx.Model(&cafe).Updates(map[string]any{
				"name":        req.Name,
				"description": req.Description,
				"url":         req.URL,
				"address":     req.Address,
				"city_code":   req.CityCode,
				"image_url":   imageURL,
			}).Error
		})
		if err != nil {
			logrus.WithField("cafe_id", cafe.ID).Errorf("failed to update cafe: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cafe"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"cafe_id": cafe.ID,   // Cafe ID
			"name":    cafe.Name, // Cafe name
		}).Info("Cafe updated")
		// Drop every cached cafe listing and detail
		_ = utils.DeleteCacheByPrefix(context.Background(), rdb, cafeCachePrefix)
		c.JSON(http.StatusOK, gin.H{"cafe": cafe})
	}
}
