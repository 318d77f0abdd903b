package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf-backend/src/models"
)

// Standalone bootstrap: creates the first Admin account so the catalog
// endpoints are usable on a fresh database.
func main() {
	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Migrate schema if not exists
	if err := db.AutoMigrate(&models.UserModel{}); err != nil {
		log.Fatalf("failed to migrate user model: %v", err)
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@openshelf.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}

	var user models.UserModel
	result := db.Where("email = ?", email).First(&user)
	if result.Error == nil {
		log.Printf("Admin %q already exists", email)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	newUser := models.UserModel{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}
	log.Printf("Admin %q created", email)
}
