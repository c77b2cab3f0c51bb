package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string // Application port
	DBUser         string // Database user
	DBPassword     string // Database password
	DBHost         string // Database host
	DBPort         string // Database port
	DBName         string // Database name
	JWTSecret      string // Secret for API bearer tokens
	RedisAddr      string // Redis server address
	RedisPass      string // Redis password
	RedisDB        int    // Redis database number
	SessionTTL     int    // Session lifetime in hours
	MapQuestAPIKey string // MapQuest static map API key
	MapsDir        string // Directory for downloaded static maps
	IsProd         bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	sessionTTL, err := strconv.Atoi(os.Getenv("SESSION_TTL_HOURS"))
	if err != nil || sessionTTL <= 0 {
		sessionTTL = 24 * 14 // Two weeks, matching the old cookie session lifetime
	}
	mapsDir := os.Getenv("MAPS_DIR")
	if mapsDir == "" {
		mapsDir = "static/maps"
	}
	return &Config{
		AppPort:        os.Getenv("APP_PORT"),          // Application port
		DBUser:         os.Getenv("DB_USER"),           // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:         os.Getenv("DB_HOST"),           // Database host
		DBPort:         os.Getenv("DB_PORT"),           // Database port
		DBName:         os.Getenv("DB_NAME"),           // Database name
		JWTSecret:      os.Getenv("JWT_SECRET"),        // Secret for API bearer tokens
		RedisAddr:      os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:        redisDB,                        // Redis database number
		SessionTTL:     sessionTTL,                     // Session lifetime in hours
		MapQuestAPIKey: os.Getenv("MAPQUEST_API_KEY"),  // MapQuest static map API key
		MapsDir:        mapsDir,                        // Directory for downloaded static maps
		IsProd:         os.Getenv("IS_PROD") == "true", // Is production environment
	}
}
