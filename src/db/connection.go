package db

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	// Load environment variables from .env file, if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	// Get DB_DSN from environment
	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Println("Error connecting to database:", err)
		return nil, err
	}

	log.Println("Library DB connected successfully!")

	return db, nil
}
