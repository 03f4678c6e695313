package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase establishes a connection to the database.
// PostgreSQL is used when DATABASE_URL is set; otherwise a local SQLite
// file keeps development working without a running server.
func ConnectDatabase() error {
	databaseURL := os.Getenv("DATABASE_URL")

	var err error
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, using local SQLite database scheduler.db")
		DB, err = gorm.Open(sqlite.Open("scheduler.db"), &gorm.Config{})
	} else {
		DB, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
