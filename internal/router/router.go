package router

import (
	"cafe_directory/internal/api"        // API handlers
	"cafe_directory/internal/maps"       // Static map fetcher
	"cafe_directory/internal/middleware" // Auth middleware chain
	"cafe_directory/internal/session"    // Session store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Options carries the collaborators the handlers close over
type Options struct {
	DB            *gorm.DB       // Relational store
	Redis         *redis.Client  // Cache backend
	Sessions      *session.Store // Session store
	Maps          *maps.Fetcher  // Static map fetcher
	JWTSecret     string         // Secret for API bearer tokens
	SecureCookies bool           // Set Secure on session cookies
	StaticDir     string         // Directory served under /static, empty to skip
}

// Setup registers every route and the per-request auth resolution on the
// given engine
func Setup(r *gin.Engine, opts Options) {
	// Cafe images and downloaded static maps
	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}

	// Resolve the current user once per request: session cookie first,
	// bearer token as the API fallback
	r.Use(middleware.SessionAuth(opts.DB, opts.Sessions))
	r.Use(middleware.JWTAuth(opts.JWTSecret))

	// Auth routes
	r.POST("/signup", api.SignupHandler(opts.DB, opts.Sessions, opts.SecureCookies))                // Registration endpoint
	r.POST("/login", api.LoginHandler(opts.DB, opts.Sessions, opts.SecureCookies))                  // Login endpoint
	r.POST("/logout", middleware.CSRF(), api.LogoutHandler(opts.Sessions, opts.SecureCookies))      // Logout endpoint, CSRF-checked
	r.POST("/api/token", api.TokenHandler(opts.DB, opts.JWTSecret))                                 // Bearer token for API clients

	// Directory routes, open to anonymous browsing
	r.GET("/cities", api.ListCitiesHandler(opts.DB))              // City reference data
	r.GET("/cafes", api.ListCafesHandler(opts.DB, opts.Redis))    // Cafe listing
	r.GET("/cafes/:id", api.GetCafeHandler(opts.DB, opts.Maps))   // Cafe detail with static map

	// Admin-gated cafe mutations
	r.POST("/cafes", middleware.RequireLogin(), middleware.AdminOnly(opts.DB), middleware.CSRF(), api.CreateCafeHandler(opts.DB, opts.Redis))
	r.PUT("/cafes/:id", middleware.RequireLogin(), middleware.AdminOnly(opts.DB), middleware.CSRF(), api.UpdateCafeHandler(opts.DB, opts.Redis))

	// Profile routes
	r.GET("/profile", middleware.RequireLogin(), api.GetProfileHandler(opts.DB))
	r.PUT("/profile", middleware.RequireLogin(), middleware.CSRF(), api.UpdateProfileHandler(opts.DB))

	// Likes API
	r.GET("/api/likes", middleware.RequireLogin(), api.LikeStatusHandler(opts.DB))
	r.POST("/api/likes", middleware.RequireLogin(), middleware.CSRF(), api.LikeHandler(opts.DB))
	r.POST("/api/unlike", middleware.RequireLogin(), middleware.CSRF(), api.UnlikeHandler(opts.DB))
}
