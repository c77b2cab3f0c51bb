package main

import (
	"os" // Admin password from the environment

	"cafe_directory/internal/auth"   // Password hashing
	"cafe_directory/internal/config" // Custom import path (Config)
	"cafe_directory/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Upsert support
)

// Reference cities the directory groups cafes under
var cities = []domain.City{
	{Code: "sf", Name: "San Francisco", State: "CA"},
	{Code: "berk", Name: "Berkeley", State: "CA"},
	{Code: "oak", Name: "Oakland", State: "CA"},
}

// A few demo cafes so a fresh install has something to browse
var cafes = []domain.Cafe{
	{
		Name:        "Bernie's Cafe",
		Description: "Serving locals in Noe Valley.",
		URL:         "https://berniescafe.com/",
		Address:     "3966 24th St",
		CityCode:    "sf",
		ImageURL:    domain.DefaultImageURL,
	},
	{
		Name:        "Perfect Cup",
		Description: "Hipster cafe in the heart of downtown Berkeley.",
		URL:         "https://perfectcup.com/",
		Address:     "2109 Shattuck Ave",
		CityCode:    "berk",
		ImageURL:    domain.DefaultImageURL,
	},
}

// Main entry point for seeding reference data and the initial admin.
// Safe to re-run: cities and cafes upsert by their natural keys.
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Database Source Name (DSN) for MySQL connection
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	// Cities first so the cafe foreign keys resolve
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cities).Error; err != nil {
		logrus.Fatalf("failed to seed cities: %v", err)
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cafes).Error; err != nil {
		logrus.Fatalf("failed to seed cafes: %v", err)
	}

	// Initial admin. Admins are only ever created here or by hand; no
	// route allows self-promotion.
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logrus.Warn("ADMIN_PASSWORD not set, skipping admin user")
	} else {
		hash, err := auth.HashPassword(password)
		if err != nil {
			logrus.Fatalf("failed to hash admin password: %v", err)
		}
		admin := domain.User{
			Username:       "admin",
			Email:          "admin@example.com",
			FirstName:      "Addie",
			LastName:       "MacAdmin",
			ImageURL:       domain.DefaultProfileURL,
			Admin:          true,
			HashedPassword: hash,
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error; err != nil {
			logrus.Fatalf("failed to seed admin: %v", err)
		}
	}

	logrus.Info("Seeding completed.") // Log successful seeding
}
