package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf-backend/src/models"
)

func Seed(db *gorm.DB) {
	// Admin account
	var admin models.UserModel
	result := db.Where("email = ?", "admin@openshelf.local").First(&admin)
	if result.Error == nil {
		log.Println("Admin account already exists")
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)

		newAdmin := models.UserModel{
			Name:     "Administrator",
			Email:    "admin@openshelf.local",
			Password: string(hashedPassword),
			Role:     models.RoleAdmin,
		}
		if err := db.Create(&newAdmin).Error; err != nil {
			log.Printf("Failed to create admin account: %v\n", err)
		} else {
			log.Println("Admin account created")
		}
	}

	// Starter catalog
	books := []models.BookModel{
		{Title: "The Go Programming Language", Author: "Alan A. A. Donovan", Publisher: "Addison-Wesley", Genre: "Programming"},
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Publisher: "O'Reilly", Genre: "Databases"},
		{Title: "The Name of the Wind", Author: "Patrick Rothfuss", Publisher: "DAW Books", Genre: "Fantasy"},
	}

	created := 0
	for _, book := range books {
		var existing models.BookModel
		check := db.Where("title = ? AND author = ?", book.Title, book.Author).First(&existing)
		if check.Error == nil {
			continue
		}
		book.IsAvailable = true
		if err := db.Create(&book).Error; err != nil {
			log.Printf("Failed to seed book %q: %v\n", book.Title, err)
		} else {
			created++
		}
	}
	if created > 0 {
		log.Printf("Seeded %d starter books\n", created)
	} else {
		log.Println("Starter catalog already present")
	}
}
